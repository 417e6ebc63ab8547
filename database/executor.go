package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

// run executes fn with backoff unless the builder is bound to a transaction
func (q *QueryBuilder[T]) run(ctx context.Context, fn func() error) error {
	if !q.retry {
		return fn()
	}
	return WithRetry(ctx, fn)
}

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data []T
	err := q.run(ctx, func() error {
		data = nil // Reset on retry
		return q.selectQuery(&data).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	if data == nil {
		data = []T{}
	}
	return data, nil
}

// First executes the query and returns the first matching record, or nil when
// nothing matches
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	data := new(T)
	err := q.run(ctx, func() error {
		return q.selectQuery(data).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var count int
	err := q.run(ctx, func() error {
		var err error
		count, err = applyWheres(q.db.NewSelect().Model((*T)(nil)), q.wheres).Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it with its generated columns filled
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := q.run(ctx, func() error {
		_, err := q.db.NewInsert().Model(data).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records in a single statement
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return data, nil
	}

	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := q.run(ctx, func() error {
		_, err := q.db.NewInsert().Model(&data).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update writes the given column values to every matching record and returns
// the number of affected rows
func (q *QueryBuilder[T]) Update(ctx context.Context, values map[string]any) (int, error) {
	if len(q.wheres) == 0 {
		return 0, fmt.Errorf("update requires at least one where condition")
	}
	if len(values) == 0 {
		return 0, nil
	}

	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var affected int64
	err := q.run(ctx, func() error {
		query := q.db.NewUpdate().Model((*T)(nil))
		for column, value := range values {
			query = query.Set("? = ?", bun.Ident(column), value)
		}
		res, err := applyWheres(query, q.wheres).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(affected), nil
}

// Delete removes every matching record and returns the number of affected rows
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	if len(q.wheres) == 0 {
		return 0, fmt.Errorf("delete requires at least one where condition")
	}

	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var affected int64
	err := q.run(ctx, func() error {
		res, err := applyWheres(q.db.NewDelete().Model((*T)(nil)), q.wheres).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(affected), nil
}
