package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	// List returns every order, newest first.
	List(ctx context.Context) ([]Order, error)
	// MarkDelivered flags one order as delivered. Already delivered orders
	// are returned unchanged.
	MarkDelivered(ctx context.Context, id string) (*Order, error)
	// MarkAllDelivered flags every pending order and returns the ones it changed.
	MarkAllDelivered(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id string) (int64, error)
	// DeleteIDs returns the ids that matched a row; unknown ids are skipped.
	DeleteIDs(ctx context.Context, ids []string) ([]string, error)
}

type SQLRepo struct{ db *sql.DB }

func NewSQLRepo(db *sql.DB) *SQLRepo { return &SQLRepo{db: db} }

func (r *SQLRepo) List(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
    SELECT id, student_name, product_name, is_delivered, created_at
    FROM store_orders
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func (r *SQLRepo) MarkDelivered(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := r.db.QueryRowContext(ctx, `
    UPDATE store_orders
    SET is_delivered = TRUE
    WHERE id = $1
    RETURNING id, student_name, product_name, is_delivered, created_at
  `, id).Scan(&o.ID, &o.StudentName, &o.ProductName, &o.IsDelivered, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQLRepo) MarkAllDelivered(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
    UPDATE store_orders
    SET is_delivered = TRUE
    WHERE is_delivered = FALSE
    RETURNING id, student_name, product_name, is_delivered, created_at
  `)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func (r *SQLRepo) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM store_orders WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLRepo) DeleteIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		DELETE FROM store_orders WHERE id = ANY($1::uuid[])
		RETURNING id
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deleted := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		deleted = append(deleted, id)
	}
	return deleted, rows.Err()
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.StudentName, &o.ProductName, &o.IsDelivered, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
