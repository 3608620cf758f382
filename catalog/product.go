// Package catalog holds the product entity and the unit of work giving access
// to its store.
package catalog

import (
	"github.com/rise-and-shine/catalog/pg"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Error codes of product operations.
const (
	CodeProductNotFound      = "PRODUCT_NOT_FOUND"
	CodeProductAlreadyExists = "PRODUCT_ALREADY_EXISTS"
	CodeProductCodeTaken     = "PRODUCT_CODE_TAKEN"
)

const (
	// ProductsCollection is the table and collection name of products.
	ProductsCollection = "products"
	// ProductCodeConstraint is the name of the unique constraint (PostgreSQL)
	// and unique index (MongoDB) on the product code.
	ProductCodeConstraint = "products_code_key"
)

// Product is an item of the catalog.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p" json:"-" bson:"-"`

	ID          int64           `bun:"id,pk,autoincrement"           json:"id"          bson:"_id"`
	Name        string          `bun:"name,notnull"                  json:"name"        bson:"name"`
	Description string          `bun:"description,notnull"           json:"description" bson:"description"`
	Code        string          `bun:"code,notnull,unique"           json:"code"        bson:"code"`
	Rate        decimal.Decimal `bun:"rate,type:numeric,notnull"       json:"rate"        bson:"rate"`

	pg.Timestamps `bson:",inline"`
}

func (p *Product) GetID() int64   { return p.ID }
func (p *Product) SetID(id int64) { p.ID = id }
