package usecase

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/catalog"
	"github.com/rise-and-shine/catalog/cqrs/query"
	"github.com/rise-and-shine/catalog/sorter"
)

// GetProductInput selects a product by id.
type GetProductInput struct {
	ID int64 `params:"id" json:"-" validate:"required,gt=0"`
}

// ListProductsInput configures the product listing.
// Sort is a list of field:direction pairs, e.g. "name:asc,rate:desc".
type ListProductsInput struct {
	Sort string `query:"sort" validate:"max=200"`
}

func getProduct(uow *catalog.UnitOfWork) query.Func[*GetProductInput, ProductView] {
	return func(ctx context.Context, in *GetProductInput) (ProductView, error) {
		p, found, err := uow.Products().GetByID(ctx, in.ID)
		if err != nil {
			return ProductView{}, errx.Wrap(err)
		}
		if !found {
			return ProductView{}, productNotFound(in.ID)
		}
		return newProductView(*p), nil
	}
}

func listProducts(uow *catalog.UnitOfWork) query.Func[*ListProductsInput, ProductList] {
	return func(ctx context.Context, in *ListProductsInput) (ProductList, error) {
		products, err := uow.Products().GetAll(ctx)
		if err != nil {
			return ProductList{}, errx.Wrap(err)
		}

		items := newProductViews(products)
		sorter.Apply(items, sorter.MakeFromStr(in.Sort, productSortFields.Names()...), productSortFields)

		return ProductList{Items: items, Count: len(items)}, nil
	}
}

func productNotFound(id int64) error {
	return errx.New(
		"product not found",
		errx.WithCode(catalog.CodeProductNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"id": id}),
	)
}
