package catalog

import (
	"context"

	"github.com/rise-and-shine/catalog/observability/logger"
	"github.com/rise-and-shine/catalog/observability/metrics"
	"github.com/rise-and-shine/catalog/repogen"
	"github.com/rise-and-shine/catalog/repogen/wrapper"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/mongo"
)

const productStoreName = "products"

func productStoreOptions() []repogen.Option {
	return []repogen.Option{
		repogen.WithEntityName("product"),
		repogen.WithNotFoundCode(CodeProductNotFound),
		repogen.WithConflictCode(CodeProductAlreadyExists),
		repogen.WithConflictCodes(map[string]string{
			ProductCodeConstraint: CodeProductCodeTaken,
		}),
		repogen.WithUniqueKey(ProductCodeConstraint, func(p *Product) any { return p.Code }),
	}
}

// NewMemProductStore returns an in-memory product store with ids 1, 2, 3...
func NewMemProductStore() *repogen.MemStore[Product, int64, *Product] {
	return repogen.NewMemStore[Product, int64](repogen.IntSequence[int64](), productStoreOptions()...)
}

// NewPgProductStore returns a product store on the products table of schemaName.
func NewPgProductStore(idb bun.IDB, schemaName string) *repogen.PgStore[Product, int64, *Product] {
	return repogen.NewPgStore[Product, int64](idb, schemaName, productStoreOptions()...)
}

// NewMongoProductStore returns a product store on the products collection of db.
// Identifiers come from the "products" counter.
func NewMongoProductStore(db *mongo.Database) *repogen.MongoStore[Product, int64, *Product] {
	return repogen.NewMongoStore[Product, int64](
		db.Collection(ProductsCollection),
		repogen.MongoCounter(db, ProductsCollection),
		productStoreOptions()...,
	)
}

// Instrumentation configures the decorators Instrument puts around a store.
// Nil fields disable the matching decorator, except tracing which is always on.
type Instrumentation struct {
	Logger  logger.Logger
	Metrics *metrics.StoreMetrics
	Cache   repogen.Cache
}

// NewTxBuilder returns a TxBuilder wrapping the stores made by backend with inst.
//
// Transaction scoped stores bypass the cache, so uncommitted rows are never cached and
// concurrent readers cannot refill an entry before the commit. The entries of products
// updated or deleted in the transaction are evicted after the commit instead.
func NewTxBuilder(backend func(idb bun.IDB) repogen.Store[Product, int64], inst Instrumentation) TxBuilder {
	cache := inst.Cache
	inst.Cache = nil

	return func(idb bun.IDB) (*UnitOfWork, func(ctx context.Context)) {
		tracked := repogen.NewTrackingStore[Product, int64](backend(idb))
		uow := NewUnitOfWork(Instrument(tracked, inst))
		if cache == nil {
			return uow, nil
		}

		return uow, func(ctx context.Context) {
			log := inst.Logger
			if log == nil {
				log = logger.NewNop()
			}
			repogen.Evict(ctx, cache, productStoreName, log, tracked.Changed()...)
		}
	}
}

// PgTxBuilder is NewTxBuilder over the products table of schemaName.
func PgTxBuilder(schemaName string, inst Instrumentation) TxBuilder {
	return NewTxBuilder(func(idb bun.IDB) repogen.Store[Product, int64] {
		return NewPgProductStore(idb, schemaName)
	}, inst)
}

// Instrument decorates store. The cache sits closest to the backend so that
// cache hits are still logged, traced and counted.
func Instrument(store repogen.Store[Product, int64], inst Instrumentation) repogen.Store[Product, int64] {
	if inst.Cache != nil {
		log := inst.Logger
		if log == nil {
			log = logger.NewNop()
		}
		store = repogen.NewCachedStore[Product, int64](store, inst.Cache, productStoreName, log)
	}
	if inst.Metrics != nil {
		store = wrapper.NewMetricsStore(store, inst.Metrics, productStoreName)
	}
	store = wrapper.NewTracingStore(store, productStoreName)
	if inst.Logger != nil {
		store = wrapper.NewLoggingStore(store, inst.Logger, productStoreName)
	}
	return store
}
