package usecase

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/catalog"
	"github.com/rise-and-shine/catalog/cqrs/command"
	"github.com/shopspring/decimal"
)

// CreateProductInput describes a new product.
type CreateProductInput struct {
	Name        string          `json:"name"        validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Code        string          `json:"code"        validate:"required,product_code"`
	Rate        decimal.Decimal `json:"rate"        validate:"gte=0"`
}

// UpdateProductInput replaces every field of the product with the given id.
type UpdateProductInput struct {
	ID          int64           `params:"id"        json:"-"     validate:"required,gt=0"`
	Name        string          `json:"name"        validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Code        string          `json:"code"        validate:"required,product_code"`
	Rate        decimal.Decimal `json:"rate"        validate:"gte=0"`
}

// DeleteProductInput selects the product to delete.
type DeleteProductInput struct {
	ID int64 `params:"id" json:"-" validate:"required,gt=0"`
}

func createProduct(factory catalog.UnitOfWorkFactory) command.Func[*CreateProductInput, ProductView] {
	return func(ctx context.Context, in *CreateProductInput) (ProductView, error) {
		p := &catalog.Product{
			Name:        in.Name,
			Description: in.Description,
			Code:        in.Code,
			Rate:        in.Rate,
		}

		err := factory.Do(ctx, func(ctx context.Context, uow *catalog.UnitOfWork) error {
			_, err := uow.Products().Add(ctx, p)
			return errx.Wrap(err)
		})
		if err != nil {
			return ProductView{}, err
		}

		return newProductView(*p), nil
	}
}

func updateProduct(factory catalog.UnitOfWorkFactory) command.Func[*UpdateProductInput, ProductView] {
	return func(ctx context.Context, in *UpdateProductInput) (ProductView, error) {
		var updated catalog.Product

		err := factory.Do(ctx, func(ctx context.Context, uow *catalog.UnitOfWork) error {
			existing, found, err := uow.Products().GetByID(ctx, in.ID)
			if err != nil {
				return errx.Wrap(err)
			}
			if !found {
				return productNotFound(in.ID)
			}

			existing.Name = in.Name
			existing.Description = in.Description
			existing.Code = in.Code
			existing.Rate = in.Rate

			if _, err = uow.Products().Update(ctx, existing); err != nil {
				return errx.Wrap(err)
			}

			updated = *existing
			return nil
		})
		if err != nil {
			return ProductView{}, err
		}

		return newProductView(updated), nil
	}
}

func deleteProduct(factory catalog.UnitOfWorkFactory) command.Func[*DeleteProductInput, DeleteResult] {
	return func(ctx context.Context, in *DeleteProductInput) (DeleteResult, error) {
		var deleted int64

		err := factory.Do(ctx, func(ctx context.Context, uow *catalog.UnitOfWork) error {
			n, err := uow.Products().Delete(ctx, in.ID)
			deleted = n
			return errx.Wrap(err)
		})
		if err != nil {
			return DeleteResult{}, err
		}

		return DeleteResult{Deleted: deleted}, nil
	}
}
