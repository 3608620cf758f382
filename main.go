// Command catalog serves the product catalog over HTTP.
//
// The product store backend (memory, PostgreSQL or MongoDB) and the optional
// Redis cache are selected in ./config/${ENVIRONMENT}.yaml.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rise-and-shine/catalog/cfgloader"
	"github.com/rise-and-shine/catalog/meta"
	"github.com/rise-and-shine/catalog/observability/logger"
)

func main() {
	cfg := cfgloader.MustLoad[Config]()

	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)
	logger.SetGlobal(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatalx(err)
	}
}
