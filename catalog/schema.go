package catalog

import (
	"context"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateSchema creates the catalog tables in schemaName when they do not exist yet.
func CreateSchema(ctx context.Context, db bun.IDB, schemaName string) error {
	if schemaName == "" {
		schemaName = "public"
	}

	if _, err := db.NewRaw("CREATE SCHEMA IF NOT EXISTS ?", bun.Ident(schemaName)).Exec(ctx); err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"schema": schemaName}))
	}

	_, err := db.NewCreateTable().
		Model((*Product)(nil)).
		ModelTableExpr("?.?", bun.Ident(schemaName), bun.Ident(ProductsCollection)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"schema": schemaName, "table": ProductsCollection}))
	}

	return nil
}

// CreateMongoIndexes creates the unique product code index on the products collection.
func CreateMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ProductsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetName(ProductCodeConstraint).SetUnique(true),
	})
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"collection": ProductsCollection}))
	}

	return nil
}
