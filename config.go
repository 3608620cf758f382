package main

import (
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/http/server"
	"github.com/rise-and-shine/catalog/mongowr"
	"github.com/rise-and-shine/catalog/observability/logger"
	"github.com/rise-and-shine/catalog/observability/tracing"
	"github.com/rise-and-shine/catalog/pg"
	"github.com/rise-and-shine/catalog/rediswr"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

const codeInvalidConfig = "INVALID_CONFIG"

// Config is the configuration of the catalog service.
type Config struct {
	Service    ServiceConfig  `yaml:"service"`
	Logger     logger.Config  `yaml:"logger"`
	Tracing    tracing.Config `yaml:"tracing"`
	HTTPServer server.Config  `yaml:"http_server"`
	Storage    StorageConfig  `yaml:"storage"`

	// Backend sections are only required by the driver using them.
	Postgres *pg.Config      `yaml:"postgres"`
	Mongo    *mongowr.Config `yaml:"mongo"`
	Redis    *rediswr.Config `yaml:"redis"`
}

type ServiceConfig struct {
	Name    string `yaml:"name"    default:"catalog"`
	Version string `yaml:"version" default:"dev"`
}

type StorageConfig struct {
	// Driver selects the product store backend.
	Driver string `yaml:"driver" default:"memory" validate:"oneof=memory postgres mongo"`

	// Cache puts the Redis read-through cache in front of the store.
	Cache bool `yaml:"cache"`

	// CommandTimeout bounds every write use case.
	CommandTimeout time.Duration `yaml:"command_timeout" default:"5s"`

	// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
}

// check verifies the cross section requirements validator tags cannot express.
func (c Config) check() error {
	missing := func(section string) error {
		return errx.New(
			"config section "+section+" is required",
			errx.WithCode(codeInvalidConfig),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"driver": c.Storage.Driver, "cache": c.Storage.Cache}),
		)
	}

	switch {
	case c.Storage.Driver == DriverPostgres && c.Postgres == nil:
		return missing("postgres")
	case c.Storage.Driver == DriverMongo && c.Mongo == nil:
		return missing("mongo")
	case c.Storage.Cache && c.Redis == nil:
		return missing("redis")
	}
	return nil
}
