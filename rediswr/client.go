// Package rediswr wraps go-redis for the catalog service.
package rediswr

import (
	"strings"

	"github.com/redis/go-redis/v9"
)

// New creates a Redis client for a single node or a cluster.
func New(cfg Config) redis.UniversalClient {
	addrs := strings.Split(cfg.Addrs, ",")
	for i := range addrs {
		addrs[i] = strings.TrimSpace(addrs[i])
	}

	if cfg.IsClusterMode {
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    addrs,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	return redis.NewClient(&redis.Options{
		Addr:     addrs[0],
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
