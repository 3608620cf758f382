package rediswr

import "time"

// Config defines the configuration options for Redis connections.
type Config struct {
	// Addrs is a comma separated list of "host:port" addresses.
	Addrs string `yaml:"addrs" validate:"required"`

	Username string `yaml:"username"`
	Password string `yaml:"password" mask:"true"`
	DB       int    `yaml:"db"       default:"0"`

	// IsClusterMode indicates whether Addrs point to a Redis cluster.
	IsClusterMode bool `yaml:"is_cluster_mode"`

	// TTL is the expiration applied to cached entries.
	TTL time.Duration `yaml:"ttl" default:"5m"`

	// KeyPrefix namespaces every cache key of the service.
	KeyPrefix string `yaml:"key_prefix" default:"catalog"`
}
