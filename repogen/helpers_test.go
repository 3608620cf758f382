package repogen_test

import (
	"testing"

	"github.com/rise-and-shine/catalog/pg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

type widget struct {
	bun.BaseModel `bun:"table:widgets,alias:w" json:"-" bson:"-"`

	ID   int64           `bun:"id,pk,autoincrement" json:"id"   bson:"_id"`
	Name string          `bun:"name,notnull"        json:"name" bson:"name"`
	Code string          `bun:"code,unique"         json:"code" bson:"code"`
	Rate decimal.Decimal `bun:"rate,type:numeric"   json:"rate" bson:"rate"`

	pg.Timestamps `bson:",inline"`
}

func (w *widget) GetID() int64   { return w.ID }
func (w *widget) SetID(id int64) { w.ID = id }

func newWidget(name, code, rate string) *widget {
	return &widget{Name: name, Code: code, Rate: decimal.RequireFromString(rate)}
}

func assertSameWidget(t *testing.T, expected, actual *widget) {
	t.Helper()

	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Name, actual.Name)
	assert.Equal(t, expected.Code, actual.Code)
	assert.True(t, expected.Rate.Equal(actual.Rate), "rate %s != %s", expected.Rate, actual.Rate)
}
