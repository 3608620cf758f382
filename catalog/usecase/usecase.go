// Package usecase implements the product use cases exposed by the HTTP API.
//
// Queries read through the unit of work directly. Commands run inside
// UnitOfWorkFactory.Do and are wrapped with recovery, metadata, tracing,
// logging and timeout wrappers.
package usecase

import (
	"time"

	"github.com/rise-and-shine/catalog/catalog"
	"github.com/rise-and-shine/catalog/cqrs/command"
	cmdwrapper "github.com/rise-and-shine/catalog/cqrs/command/wrapper"
	"github.com/rise-and-shine/catalog/cqrs/query"
	querywrapper "github.com/rise-and-shine/catalog/cqrs/query/wrapper"
	"github.com/rise-and-shine/catalog/observability/logger"
	"github.com/rise-and-shine/catalog/ucdef"
)

// Operation ids of the product use cases.
const (
	OpGetProduct    = "get-product"
	OpListProducts  = "list-products"
	OpCreateProduct = "create-product"
	OpUpdateProduct = "update-product"
	OpDeleteProduct = "delete-product"
)

const defaultCommandTimeout = 5 * time.Second

// Deps are the dependencies of the product use cases.
type Deps struct {
	// UoW serves the queries.
	UoW *catalog.UnitOfWork
	// Factory scopes the commands.
	Factory catalog.UnitOfWorkFactory
	Logger  logger.Logger
	// CommandTimeout bounds a single command. Defaults to 5 seconds.
	CommandTimeout time.Duration
}

// UseCases holds every product use case.
type UseCases struct {
	GetProduct    ucdef.UserAction[*GetProductInput, ProductView]
	ListProducts  ucdef.UserAction[*ListProductsInput, ProductList]
	CreateProduct ucdef.UserAction[*CreateProductInput, ProductView]
	UpdateProduct ucdef.UserAction[*UpdateProductInput, ProductView]
	DeleteProduct ucdef.UserAction[*DeleteProductInput, DeleteResult]
}

// New builds the product use cases.
func New(deps Deps) *UseCases {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.CommandTimeout <= 0 {
		deps.CommandTimeout = defaultCommandTimeout
	}

	return &UseCases{
		GetProduct:    newQuery(OpGetProduct, deps, getProduct(deps.UoW)),
		ListProducts:  newQuery(OpListProducts, deps, listProducts(deps.UoW)),
		CreateProduct: newCommand(OpCreateProduct, deps, createProduct(deps.Factory)),
		UpdateProduct: newCommand(OpUpdateProduct, deps, updateProduct(deps.Factory)),
		DeleteProduct: newCommand(OpDeleteProduct, deps, deleteProduct(deps.Factory)),
	}
}

func newQuery[I, O any](operationID string, deps Deps, fn query.Func[I, O]) ucdef.UserAction[I, O] {
	q := query.Wrap[I, O](
		fn,
		querywrapper.NewTracingQueryWrapper[I, O](operationID),
		querywrapper.NewLoggerQueryWrapper[I, O](deps.Logger, operationID),
	)
	return ucdef.Action(operationID, q.Execute)
}

func newCommand[I, O any](operationID string, deps Deps, fn command.Func[I, O]) ucdef.UserAction[I, O] {
	cmd := command.Wrap[I, O](
		fn,
		cmdwrapper.NewRecoveryCommandWrapper[I, O](deps.Logger, operationID),
		cmdwrapper.NewMetaInjectCommandWrapper[I, O](operationID),
		cmdwrapper.NewTracingCommandWrapper[I, O](operationID),
		cmdwrapper.NewLoggerCommandWrapper[I, O](deps.Logger, operationID),
		cmdwrapper.NewTimeoutCommandWrapper[I, O](deps.CommandTimeout),
	)
	return ucdef.Action(operationID, cmd.Execute)
}
