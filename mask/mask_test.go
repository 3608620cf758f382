package mask_test

import (
	"testing"
	"time"

	"github.com/rise-and-shine/catalog/mask"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func pairs(om *orderedmap.OrderedMap[string, any]) [][2]any {
	var out [][2]any
	for p := om.Oldest(); p != nil; p = p.Next() {
		out = append(out, [2]any{p.Key, p.Value})
	}
	return out
}

func TestStructToOrdMap_NilInput(t *testing.T) {
	assert.Nil(t, mask.StructToOrdMap(nil))
}

func TestStructToOrdMap(t *testing.T) {
	type pgConfig struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password" mask:"true"`
		DSN      string `yaml:"dsn"      mask:"true"`
	}
	type redisConfig struct {
		Addrs []string `yaml:"addrs"`
		DB    int      `yaml:"db"       mask:"true"`
	}
	type config struct {
		Name     string       `json:"name"`
		Internal string       `json:"-"`
		Postgres pgConfig     `yaml:"postgres"`
		Redis    *redisConfig `yaml:"redis"`
		Mongo    *pgConfig    `yaml:"mongo"`
		Timeout  time.Duration
	}

	cfg := config{
		Name:     "catalog",
		Internal: "hidden",
		Postgres: pgConfig{Host: "localhost", Port: 5432, Password: "secret"},
		Redis:    &redisConfig{Addrs: []string{"localhost:6379"}, DB: 2},
		Timeout:  time.Second,
	}

	got := pairs(mask.StructToOrdMap(cfg))

	assert.Equal(t, [][2]any{
		{"name", "catalog"},
		{"postgres.host", "localhost"},
		{"postgres.port", 5432},
		{"postgres.password", mask.Masked},
		{"postgres.dsn", ""},
		{"redis.addrs", []string{"localhost:6379"}},
		{"redis.db", "***masked-int***"},
		{"mongo", nil},
		{"Timeout", time.Second},
	}, got)
}

func TestStructToOrdMap_TextMarshalersAreLeaves(t *testing.T) {
	type input struct {
		Rate      decimal.Decimal `json:"rate"`
		CreatedAt time.Time       `json:"created_at"`
		Secret    *string         `json:"secret" mask:"true"`
	}

	secret := "token"
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got := mask.StructToOrdMap(&input{Rate: decimal.RequireFromString("9.99"), CreatedAt: at, Secret: &secret})
	require.Equal(t, 3, got.Len())

	rate, _ := got.Get("rate")
	assert.True(t, decimal.RequireFromString("9.99").Equal(rate.(decimal.Decimal)))

	createdAt, _ := got.Get("created_at")
	assert.Equal(t, at, createdAt)

	masked, _ := got.Get("secret")
	assert.Equal(t, mask.Masked, masked)
}

func TestStructToOrdMap_NonStruct(t *testing.T) {
	got := mask.StructToOrdMap(42)

	assert.Equal(t, [][2]any{{"", 42}}, pairs(got))
}
