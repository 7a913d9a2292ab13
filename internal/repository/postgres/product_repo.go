package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRow struct {
	ID        string
	Name      string
	Rate      float64
	Stock     int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductRepo struct {
	db *pgxpool.Pool
}

func NewProductRepo(db *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, name string, rate float64, stock int) (*ProductRow, error) {
	const q = `
INSERT INTO products (name, rate, stock)
VALUES ($1, $2::numeric, $3)
RETURNING id::text, name, rate::float8, stock, is_active, created_at, updated_at;
`
	row := r.db.QueryRow(ctx, q, name, rate, stock)

	var out ProductRow
	if err := row.Scan(&out.ID, &out.Name, &out.Rate, &out.Stock, &out.IsActive, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepo) List(ctx context.Context, limit int, offset int) ([]ProductRow, error) {
	const q = `
SELECT id::text, name, rate::float8, stock, is_active, created_at, updated_at
FROM products
ORDER BY created_at DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductRow
	for rows.Next() {
		var p ProductRow
		if err := rows.Scan(&p.ID, &p.Name, &p.Rate, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Update(ctx context.Context, id string, name *string, rate *float64, stock *int, isActive *bool) (*ProductRow, error) {
	const q = `
UPDATE products
SET
  name = COALESCE($2, name),
  rate = COALESCE($3::numeric, rate),
  stock = COALESCE($4, stock),
  is_active = COALESCE($5, is_active),
  updated_at = now()
WHERE id = $1::uuid
RETURNING id::text, name, rate::float8, stock, is_active, created_at, updated_at;
`
	row := r.db.QueryRow(ctx, q, id, name, rate, stock, isActive)

	var out ProductRow
	if err := row.Scan(&out.ID, &out.Name, &out.Rate, &out.Stock, &out.IsActive, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1::uuid;`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
