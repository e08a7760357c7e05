package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// PostgresStore implements Store on top of the three table repositories.
type PostgresStore struct {
	*OrderRepository
	*ProductRepository
	*CustomerRepository
	db *sqlx.DB
}

// NewPostgresStore creates a Store backed by db.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		OrderRepository:    NewOrderRepository(db),
		ProductRepository:  NewProductRepository(db),
		CustomerRepository: NewCustomerRepository(db),
		db:                 db,
	}
}

// Ping verifies the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return errors.Wrap(s.db.PingContext(ctx), "ping database")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// listSuffix renders the ORDER BY and LIMIT tail of a list query. Only the
// orders table has a date column; hasDate selects whether it may be used.
func listSuffix(opts ListOptions, hasDate bool) (string, []any) {
	var q string
	switch opts.Sort {
	case SortLatestDateFirst:
		if hasDate {
			q = ` ORDER BY date DESC, created_at DESC`
		} else {
			q = ` ORDER BY created_at DESC`
		}
	case SortNewestFirst:
		q = ` ORDER BY created_at DESC`
	}
	if opts.Limit > 0 {
		return q + ` LIMIT $1`, []any{opts.Limit}
	}
	return q, nil
}

// execOne runs a single-row write and maps zero affected rows to notFound.
func execOne(ctx context.Context, db *sqlx.DB, notFound error, op, q string, args ...any) error {
	stmt, err := db.PreparexContext(ctx, q)
	if err != nil {
		return errors.Wrap(err, op)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return errors.Wrap(err, op)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// getOne fetches a single row into dest, mapping sql.ErrNoRows to notFound.
func getOne(ctx context.Context, db *sqlx.DB, dest any, notFound error, op, q string, args ...any) error {
	stmt, err := db.PreparexContext(ctx, q)
	if err != nil {
		return errors.Wrap(err, op)
	}
	defer stmt.Close()

	if err := stmt.GetContext(ctx, dest, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}
		return errors.Wrapf(err, "%s: scan", op)
	}
	return nil
}
