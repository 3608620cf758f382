package pg

import (
	"fmt"
	"time"
)

// Config defines the configuration options for PostgreSQL connections.
type Config struct {
	// Debug enables SQL query logging when set to true.
	Debug bool `yaml:"debug" default:"false"`

	// DSN is a complete connection string. When set, the discrete connection fields are ignored.
	DSN string `yaml:"dsn" mask:"true"`

	Host     string `yaml:"host"     validate:"required_without=DSN"`
	Port     int    `yaml:"port"     validate:"required_without=DSN"`
	User     string `yaml:"user"     validate:"required_without=DSN"`
	Password string `yaml:"password" validate:"required_without=DSN" mask:"true"`
	Database string `yaml:"database" validate:"required_without=DSN"`

	// SSLMode specifies the SSL mode for the connection.
	SSLMode string `yaml:"sslmode" default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	// Schema is the schema holding the catalog tables. It is also used as search_path.
	Schema string `yaml:"schema" default:"public"`
	// ConnectTimeout specifies the maximum time to wait when connecting to the server.
	ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`

	// ReadyAttempts is the number of connectivity checks made at startup before giving up.
	ReadyAttempts uint `yaml:"ready_attempts" default:"5"`
	// ReadyDelay is the initial delay between startup connectivity checks.
	ReadyDelay time.Duration `yaml:"ready_delay" default:"500ms"`

	PoolMaxConns        int32         `yaml:"pool_max_conns"          default:"4"`
	PoolMinConns        int32         `yaml:"pool_min_conns"          default:"1"`
	PoolMaxConnLifetime time.Duration `yaml:"pool_max_conn_lifetime"  default:"1h"`
	PoolMaxConnIdleTime time.Duration `yaml:"pool_max_conn_idle_time" default:"30m"`
}

// dsn returns a PostgreSQL connection string built from the configuration.
func (c Config) dsn() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s connect_timeout=%d",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
		c.Schema,
		int(c.ConnectTimeout.Seconds()),
	)
}
