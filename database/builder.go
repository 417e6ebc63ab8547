package database

import (
	"time"

	"github.com/uptrace/bun"
)

// QueryBuilder provides a fluent, type-safe API for building database queries
type QueryBuilder[T any] struct {
	db bun.IDB

	// Query clauses
	wheres    []*WhereClause
	orders    []*OrderClause
	limitVal  *int
	offsetVal *int

	// Relations to preload
	relations []string

	// Options
	forUpdate bool
	retry     bool

	// Timeout
	timeout time.Duration
}

// WhereClause represents a WHERE condition
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
	Negate   bool // For NOT conditions
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// Query creates a new QueryBuilder instance. db may be the shared *DB or a
// bun.Tx; queries inside a transaction are never retried.
func Query[T any](db bun.IDB) *QueryBuilder[T] {
	_, inTx := db.(bun.Tx)
	return &QueryBuilder[T]{
		db:    db,
		retry: !inTx,
	}
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
	})
	return q
}

// WhereNot adds a WHERE NOT condition
func (q *QueryBuilder[T]) WhereNot(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
		Negate:   true,
	})
	return q
}

// WhereIn adds a WHERE IN condition
func (q *QueryBuilder[T]) WhereIn(column string, values any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IN",
		Value:    values,
	})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		IsRaw:   true,
		RawSQL:  sql,
		RawArgs: args,
	})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{
		Column:    column,
		Direction: string(direction),
	})
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// Relation specifies a bun relation to preload
func (q *QueryBuilder[T]) Relation(relation string) *QueryBuilder[T] {
	q.relations = append(q.relations, relation)
	return q
}

// ForUpdate adds FOR UPDATE clause (for row locking)
func (q *QueryBuilder[T]) ForUpdate() *QueryBuilder[T] {
	q.forUpdate = true
	return q
}

// Timeout sets a timeout for the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

// whereable is satisfied by bun's select, update and delete queries
type whereable[Q any] interface {
	Where(query string, args ...any) Q
}

func applyWheres[Q whereable[Q]](query Q, wheres []*WhereClause) Q {
	for _, where := range wheres {
		if where.IsRaw {
			query = query.Where(where.RawSQL, where.RawArgs...)
			continue
		}

		switch {
		case where.Operator == "IN":
			query = query.Where("? IN (?)", bun.Ident(where.Column), bun.In(where.Value))
		case where.Negate:
			query = query.Where("NOT (? "+where.Operator+" ?)", bun.Ident(where.Column), where.Value)
		default:
			query = query.Where("? "+where.Operator+" ?", bun.Ident(where.Column), where.Value)
		}
	}
	return query
}

// selectQuery builds the bun select for the configured clauses scanning into model
func (q *QueryBuilder[T]) selectQuery(model any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)

	for _, relation := range q.relations {
		query = query.Relation(relation)
	}

	query = applyWheres(query, q.wheres)

	for _, order := range q.orders {
		query = query.OrderExpr("? "+order.Direction, bun.Ident(order.Column))
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}
	if q.forUpdate {
		query = query.For("UPDATE")
	}

	return query
}
