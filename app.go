package main

import (
	"context"
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rise-and-shine/catalog/catalog"
	"github.com/rise-and-shine/catalog/catalog/handler"
	"github.com/rise-and-shine/catalog/catalog/usecase"
	"github.com/rise-and-shine/catalog/http/server"
	"github.com/rise-and-shine/catalog/http/server/middleware"
	"github.com/rise-and-shine/catalog/meta"
	"github.com/rise-and-shine/catalog/mongowr"
	"github.com/rise-and-shine/catalog/observability/logger"
	"github.com/rise-and-shine/catalog/observability/metrics"
	"github.com/rise-and-shine/catalog/observability/tracing"
	"github.com/rise-and-shine/catalog/pg"
	"github.com/rise-and-shine/catalog/rediswr"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// app owns the resources of a running service.
type app struct {
	cfg     Config
	log     logger.Logger
	reg     *prometheus.Registry
	checks  map[string]handler.Checker
	closers []func() error
}

// run wires the service and serves HTTP until ctx is cancelled.
func run(ctx context.Context, cfg Config) error {
	if err := cfg.check(); err != nil {
		return err
	}

	a := &app{
		cfg:    cfg,
		log:    logger.Named("catalog"),
		reg:    metrics.NewRegistry(),
		checks: map[string]handler.Checker{},
	}
	defer a.close()

	shutdownTracer, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		return errx.Wrap(err)
	}
	a.closers = append(a.closers, shutdownTracer)

	uow, factory, err := a.buildStorage(ctx)
	if err != nil {
		return err
	}

	meta.SetMessages(catalog.Messages(), catalog.DefaultLanguage)

	srv, err := a.buildServer(usecase.New(usecase.Deps{
		UoW:            uow,
		Factory:        factory,
		Logger:         a.log,
		CommandTimeout: cfg.Storage.CommandTimeout,
	}))
	if err != nil {
		return err
	}

	return a.serve(ctx, srv)
}

// buildStorage connects the configured backend and returns the unit of work of
// queries and the factory scoping commands.
func (a *app) buildStorage(ctx context.Context) (*catalog.UnitOfWork, catalog.UnitOfWorkFactory, error) {
	storeMetrics, err := metrics.NewStoreMetrics(a.reg)
	if err != nil {
		return nil, nil, errx.Wrap(err)
	}

	inst := catalog.Instrumentation{Logger: a.log, Metrics: storeMetrics}
	if a.cfg.Storage.Cache {
		cache, err := a.connectRedis(ctx)
		if err != nil {
			return nil, nil, err
		}
		inst.Cache = cache
	}

	log := a.log.With("storage_driver", a.cfg.Storage.Driver, "cache", a.cfg.Storage.Cache)

	switch a.cfg.Storage.Driver {
	case DriverPostgres:
		db, err := a.connectPostgres(ctx)
		if err != nil {
			return nil, nil, err
		}
		schema := a.cfg.Postgres.Schema
		uow := catalog.NewUnitOfWork(catalog.Instrument(catalog.NewPgProductStore(db, schema), inst))
		log.Info("storage ready")
		return uow, catalog.NewPgFactory(db, catalog.PgTxBuilder(schema, inst)), nil

	case DriverMongo:
		client, err := mongowr.Connect(ctx, *a.cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })
		a.checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }

		db := client.Database(a.cfg.Mongo.Database)
		if err = catalog.CreateMongoIndexes(ctx, db); err != nil {
			return nil, nil, err
		}
		uow := catalog.NewUnitOfWork(catalog.Instrument(catalog.NewMongoProductStore(db), inst))
		log.Info("storage ready")
		return uow, catalog.NewStaticFactory(uow), nil

	default:
		uow := catalog.NewUnitOfWork(catalog.Instrument(catalog.NewMemProductStore(), inst))
		log.Info("storage ready")
		return uow, catalog.NewStaticFactory(uow), nil
	}
}

func (a *app) connectPostgres(ctx context.Context) (*bun.DB, error) {
	cfg := *a.cfg.Postgres

	db, err := pg.NewBunDB(cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	if err = pg.WaitReady(ctx, db, cfg); err != nil {
		return nil, err
	}
	if err = catalog.CreateSchema(ctx, db, cfg.Schema); err != nil {
		return nil, err
	}

	a.checks["postgres"] = func(ctx context.Context) error { return db.PingContext(ctx) }
	return db, nil
}

func (a *app) connectRedis(ctx context.Context) (*rediswr.Cache, error) {
	cfg := *a.cfg.Redis

	client := rediswr.New(cfg)
	a.closers = append(a.closers, client.Close)

	cache := rediswr.NewCache(client, cfg.TTL, cfg.KeyPrefix)
	if err := cache.Ping(ctx); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"addrs": cfg.Addrs}))
	}

	a.checks["redis"] = cache.Ping
	return cache, nil
}

func (a *app) buildServer(uc *usecase.UseCases) (*server.HTTPServer, error) {
	httpMetrics, err := metrics.NewHTTPMetrics(a.reg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	cfg := a.cfg.HTTPServer
	srv := server.NewHTTPServer(cfg, []server.Middleware{
		middleware.NewRecoveryMW(a.log),
		middleware.NewTracingMW(),
		middleware.NewTimeoutMW(cfg.HandleTimeout),
		middleware.NewMetaInjectMW(),
		middleware.NewMetricsMW(httpMetrics),
		middleware.NewLoggerMW(a.log),
		middleware.NewErrorHandlerMW(cfg.HideErrorDetails),
	})

	srv.RegisterRouter(func(r fiber.Router) {
		handler.RegisterOps(r, a.reg, a.checks)
		handler.RegisterProducts(r, uc)
	})

	return srv, nil
}

func (a *app) serve(ctx context.Context, srv *server.HTTPServer) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.With("address", a.cfg.HTTPServer.Address()).Info("http server started")
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return errx.Wrap(err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down")

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Storage.ShutdownTimeout)
	defer cancel()

	return errx.Wrap(srv.Stop(stopCtx))
}

// close releases resources in reverse acquisition order.
func (a *app) close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Warnx(errx.Wrap(err))
	}
}
