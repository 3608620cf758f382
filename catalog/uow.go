package catalog

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/repogen"
	"github.com/uptrace/bun"
)

// UnitOfWork is the single access point to every store of the catalog.
type UnitOfWork struct {
	products repogen.Store[Product, int64]
}

// NewUnitOfWork bundles the given stores.
func NewUnitOfWork(products repogen.Store[Product, int64]) *UnitOfWork {
	return &UnitOfWork{products: products}
}

// Products returns the product store.
func (u *UnitOfWork) Products() repogen.Store[Product, int64] {
	return u.products
}

// UnitOfWorkFactory runs a function against a unit of work. Implementations
// decide whether the stores of that unit of work share a transaction.
type UnitOfWorkFactory interface {
	Do(ctx context.Context, fn func(ctx context.Context, uow *UnitOfWork) error) error
}

type staticFactory struct {
	uow *UnitOfWork
}

// NewStaticFactory returns a factory always handing out uow. No transaction is opened,
// every store call commits on its own.
func NewStaticFactory(uow *UnitOfWork) UnitOfWorkFactory {
	return staticFactory{uow: uow}
}

func (f staticFactory) Do(ctx context.Context, fn func(ctx context.Context, uow *UnitOfWork) error) error {
	return fn(ctx, f.uow)
}

// TxBuilder creates a unit of work whose stores run on idb. The returned committed
// func, when not nil, is called once the transaction has committed.
type TxBuilder func(idb bun.IDB) (uow *UnitOfWork, committed func(ctx context.Context))

type pgFactory struct {
	db    *bun.DB
	build TxBuilder
}

// NewPgFactory returns a factory running fn inside a PostgreSQL transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
func NewPgFactory(db *bun.DB, build TxBuilder) UnitOfWorkFactory {
	return pgFactory{db: db, build: build}
}

func (f pgFactory) Do(ctx context.Context, fn func(ctx context.Context, uow *UnitOfWork) error) error {
	var (
		fnErr     error
		committed func(ctx context.Context)
	)

	err := f.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var uow *UnitOfWork
		uow, committed = f.build(tx)
		fnErr = fn(ctx, uow)
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return errx.Wrap(err)
	}

	if committed != nil {
		committed(ctx)
	}
	return nil
}
