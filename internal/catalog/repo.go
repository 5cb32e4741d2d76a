// Package catalog holds the store products and categories and their
// Postgres repository.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CreateProduct(ctx context.Context, p *Product) error
	CreateCategory(ctx context.Context, c *Category) error
	DeleteProduct(ctx context.Context, id string) (bool, error)
	// DeleteCategory removes the category and, through the schema's
	// ON DELETE CASCADE, every product referencing it.
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

type SQLRepo struct{ db *sql.DB }

func NewSQLRepo(db *sql.DB) *SQLRepo { return &SQLRepo{db: db} }

func (r *SQLRepo) ListProducts(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price::text, category_id, image_url, created_at
		FROM store_products
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var (
			p   Product
			img sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CategoryID, &img, &p.CreatedAt); err != nil {
			return nil, err
		}
		if img.Valid {
			p.ImageURL = &img.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM store_categories
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLRepo) CreateProduct(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	var img sql.NullString
	if p.ImageURL != nil {
		img = sql.NullString{String: *p.ImageURL, Valid: true}
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO store_products (id, name, price, category_id, image_url, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING created_at
	`, p.ID, p.Name, p.Price, p.CategoryID, img).Scan(&p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (r *SQLRepo) CreateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO store_categories (id, name, created_at)
		VALUES ($1,$2,NOW())
		RETURNING created_at
	`, c.ID, c.Name).Scan(&c.CreatedAt)
}

func (r *SQLRepo) DeleteProduct(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, `DELETE FROM store_products WHERE id=$1`, id)
}

func (r *SQLRepo) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, `DELETE FROM store_categories WHERE id=$1`, id)
}

func (r *SQLRepo) deleteByID(ctx context.Context, query, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
