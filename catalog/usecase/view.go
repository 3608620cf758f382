package usecase

import (
	"strings"
	"time"

	"github.com/rise-and-shine/catalog/catalog"
	"github.com/rise-and-shine/catalog/sorter"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ProductView is the client facing representation of a product.
type ProductView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Code        string          `json:"code"`
	Rate        decimal.Decimal `json:"rate"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductList is a full listing of products.
type ProductList struct {
	Items []ProductView `json:"items"`
	Count int           `json:"count"`
}

// DeleteResult reports how many products a delete removed.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}

func newProductView(p catalog.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Code:        p.Code,
		Rate:        p.Rate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProductViews(products []catalog.Product) []ProductView {
	return lo.Map(products, func(p catalog.Product, _ int) ProductView {
		return newProductView(p)
	})
}

//nolint:gochecknoglobals // read-only comparator table
var productSortFields = sorter.Fields[ProductView]{
	"id":   sorter.By(func(v ProductView) int64 { return v.ID }),
	"name": sorter.By(func(v ProductView) string { return strings.ToLower(v.Name) }),
	"code": sorter.By(func(v ProductView) string { return v.Code }),
	"rate": func(a, b ProductView) int { return a.Rate.Cmp(b.Rate) },
	"created_at": func(a, b ProductView) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	},
}
