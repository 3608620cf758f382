package mongowr

import "time"

// Config defines the MongoDB connection options.
type Config struct {
	URI      string `yaml:"uri"      validate:"required" mask:"true"`
	Database string `yaml:"database" validate:"required"`

	ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`
	MaxPoolSize    uint64        `yaml:"max_pool_size"   default:"100"`
	MinPoolSize    uint64        `yaml:"min_pool_size"   default:"1"`

	// ReadyAttempts is the number of pings made at startup before giving up.
	ReadyAttempts uint          `yaml:"ready_attempts" default:"5"`
	ReadyDelay    time.Duration `yaml:"ready_delay"    default:"500ms"`
}
