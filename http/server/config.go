package server

import (
	"fmt"
	"time"
)

// Config is the http_server section of the service configuration.
type Config struct {
	// HideErrorDetails omits trace and details from error bodies. Enable it for
	// public deployments.
	HideErrorDetails bool `yaml:"hide_error_details"`

	Host string `yaml:"host" validate:"required" default:"0.0.0.0"`
	Port int    `yaml:"port" validate:"required,gt=0,lte=65535" default:"8080"`

	// ReadTimeout, WriteTimeout and IdleTimeout are passed to fasthttp as is.
	ReadTimeout  time.Duration `yaml:"read_timeout"  validate:"required" default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"required" default:"5s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  validate:"required" default:"120s"`

	// HandleTimeout bounds a single request, including the store calls it makes.
	HandleTimeout time.Duration `yaml:"request_timeout" validate:"required" default:"10s"`

	// BodyLimit is the maximum request body size in bytes. Product payloads are small,
	// so 1MB is plenty.
	BodyLimit int `yaml:"body_limit" validate:"required" default:"1048576"`
}

// Address returns the listen address in the form "host:port".
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
