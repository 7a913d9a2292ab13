package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRow struct {
	ID        string
	Name      string
	Phone     *string
	Area      *string
	Address   *string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CustomerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepo(db *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{db: db}
}

const customerCols = `
  id::text, name, phone, area, address, created_by::text, created_at, updated_at`

func (r *CustomerRepo) Create(ctx context.Context, in CustomerRow) (*CustomerRow, error) {
	const q = `
INSERT INTO customers (id, name, phone, area, address, created_by)
VALUES ($1, $2, $3, $4, $5, $6::uuid)
RETURNING` + customerCols + `;`

	id := uuid.New().String()

	var out CustomerRow
	err := r.db.QueryRow(ctx, q,
		id,
		in.Name,
		in.Phone,
		in.Area,
		in.Address,
		in.CreatedBy,
	).Scan(
		&out.ID,
		&out.Name,
		&out.Phone,
		&out.Area,
		&out.Address,
		&out.CreatedBy,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*CustomerRow, error) {
	const q = `
SELECT` + customerCols + `
FROM customers
WHERE id = $1::uuid
LIMIT 1;`

	var out CustomerRow
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&out.ID,
		&out.Name,
		&out.Phone,
		&out.Area,
		&out.Address,
		&out.CreatedBy,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CustomerRepo) List(ctx context.Context, area *string, limit, offset int) ([]CustomerRow, error) {
	const q = `
SELECT` + customerCols + `
FROM customers
WHERE ($1::text IS NULL OR area ILIKE '%' || $1 || '%')
ORDER BY created_at DESC
LIMIT $2 OFFSET $3;`

	rows, err := r.db.Query(ctx, q, area, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CustomerRow, 0, limit)
	for rows.Next() {
		var c CustomerRow
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Phone,
			&c.Area,
			&c.Address,
			&c.CreatedBy,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) Update(ctx context.Context, id string, in CustomerRow) (*CustomerRow, error) {
	const q = `
UPDATE customers
SET
  name    = COALESCE($2, name),
  phone   = COALESCE($3, phone),
  area    = COALESCE($4, area),
  address = COALESCE($5, address),
  updated_at = now()
WHERE id = $1::uuid
RETURNING` + customerCols + `;`

	var out CustomerRow
	err := r.db.QueryRow(ctx, q,
		id,
		nullIfEmptyStrPtr(in.Name),
		in.Phone,
		in.Area,
		in.Address,
	).Scan(
		&out.ID,
		&out.Name,
		&out.Phone,
		&out.Area,
		&out.Address,
		&out.CreatedBy,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1::uuid;`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// used where the row struct carries name as string rather than *string
func nullIfEmptyStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
