package repogen

import (
	"context"
	"fmt"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/pg"
	"github.com/uptrace/bun"
)

// PgStore is a Store backed by a PostgreSQL table using bun ORM.
//
// The entity type must be a bun model with its primary key tagged (`bun:"id,pk,autoincrement"`).
// The store works on any bun.IDB, so the same type serves plain connections and transactions.
type PgStore[E any, ID comparable, P Entity[E, ID]] struct {
	settings

	idb        bun.IDB
	schemaName string
}

// NewPgStore creates a PostgreSQL store on the given connection or transaction.
func NewPgStore[E any, ID comparable, P Entity[E, ID]](
	idb bun.IDB,
	schemaName string,
	opts ...Option,
) *PgStore[E, ID, P] {
	if schemaName == "" {
		schemaName = "public"
	}
	return &PgStore[E, ID, P]{
		settings:   newSettings[E](opts),
		idb:        idb,
		schemaName: schemaName,
	}
}

func (r *PgStore[E, ID, P]) GetByID(ctx context.Context, id ID) (*E, bool, error) {
	entity := new(E)
	P(entity).SetID(id)

	q := r.idb.NewSelect().Model(entity).WherePK()
	q = r.applySelectModelTableExpr(q)

	err := q.Scan(ctx)
	if pg.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entity, true, nil
}

func (r *PgStore[E, ID, P]) GetAll(ctx context.Context) ([]E, error) {
	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.applySelectModelTableExpr(q)

	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	for _, pk := range table.PKs {
		q = q.OrderExpr("?.? ASC", bun.Ident(table.Alias), bun.Ident(pk.Name))
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entities, nil
}

func (r *PgStore[E, ID, P]) Add(ctx context.Context, entity *E) (ID, error) {
	var zero ID
	if entity == nil {
		return zero, r.invalid("add")
	}

	q := r.idb.NewInsert().Model(entity).Returning("*")
	q = r.applyInsertModelTableExpr(q)
	_, err := q.Exec(ctx)
	if err != nil {
		return zero, r.mapWriteErr(err, "creating", q)
	}

	return P(entity).GetID(), nil
}

func (r *PgStore[E, ID, P]) Update(ctx context.Context, entity *E) (int64, error) {
	if entity == nil {
		return 0, r.invalid("update")
	}

	q := r.idb.NewUpdate().Model(entity).WherePK().Returning("*")
	q = r.applyUpdateModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		return 0, r.mapWriteErr(err, "updating", q)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected == 0 {
		return 0, r.notFound("update", P(entity).GetID())
	}

	return rowsAffected, nil
}

func (r *PgStore[E, ID, P]) Delete(ctx context.Context, id ID) (int64, error) {
	entity := new(E)
	P(entity).SetID(id)

	q := r.idb.NewDelete().Model(entity).WherePK()
	q = r.applyDeleteModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected == 0 {
		return 0, r.notFound("delete", id)
	}

	return rowsAffected, nil
}

// mapWriteErr converts unique violations into conflict errors and wraps everything else.
func (r *PgStore[E, ID, P]) mapWriteErr(err error, op string, q fmt.Stringer) error {
	details := pg.GetPgErrorDetails(err, q)
	if code, exists := r.conflictCodes[pg.ConstraintName(err)]; exists {
		return r.conflict(op, code, details)
	}
	if pg.IsConflict(err) {
		return r.conflict(op, "", details)
	}
	return errx.Wrap(err, errx.WithDetails(details))
}

func (r *PgStore[E, ID, P]) applySelectModelTableExpr(q *bun.SelectQuery) *bun.SelectQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}

func (r *PgStore[E, ID, P]) applyInsertModelTableExpr(q *bun.InsertQuery) *bun.InsertQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}

func (r *PgStore[E, ID, P]) applyUpdateModelTableExpr(q *bun.UpdateQuery) *bun.UpdateQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}

func (r *PgStore[E, ID, P]) applyDeleteModelTableExpr(q *bun.DeleteQuery) *bun.DeleteQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}
