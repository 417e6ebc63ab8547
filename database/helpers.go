package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// FindByID finds a record by its primary key, returning nil when absent
func FindByID[T any](ctx context.Context, db bun.IDB, id int64) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}

// DeleteByID deletes a record by its primary key
func DeleteByID[T any](ctx context.Context, db bun.IDB, id int64) (int, error) {
	return Query[T](db).Where("id", id).Delete(ctx)
}

// DeleteByIDs deletes every record whose primary key is in ids
func DeleteByIDs[T any](ctx context.Context, db bun.IDB, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return Query[T](db).WhereIn("id", ids).Delete(ctx)
}

// Pluck extracts a single column from every matching record
func Pluck[T any, R any](ctx context.Context, q *QueryBuilder[T], column string) ([]R, error) {
	var values []R
	err := applyWheres(q.db.NewSelect().Model((*T)(nil)).Column(column), q.wheres).Scan(ctx, &values)
	if err != nil {
		return nil, fmt.Errorf("failed to pluck %s: %w", column, err)
	}
	return values, nil
}

// Transaction executes fn inside a database transaction. The transaction is
// rolled back when fn returns an error or panics.
func Transaction(ctx context.Context, db *DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil {
		return fmt.Errorf("database instance not initialized")
	}
	return db.RunInTx(ctx, &sql.TxOptions{}, fn)
}

// TransactionWithResult executes fn within a transaction and returns its result
func TransactionWithResult[T any](ctx context.Context, db *DB, fn func(ctx context.Context, tx bun.Tx) (T, error)) (T, error) {
	var result T
	err := Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	return result, err
}
