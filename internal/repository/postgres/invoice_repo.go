package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRow struct {
	ID          string
	InvoiceNo   string
	CustomerID  string
	TotalAmount float64
	PaidAmount  float64
	DueAmount   float64
	InvoiceDate time.Time
	Notes       *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type InvoiceItemRow struct {
	ID          string
	InvoiceID   string
	ProductID   string
	ProductName string
	Qty         int
	Rate        float64
	Amount      float64
}

type InvoiceRepo struct {
	db *pgxpool.Pool
}

func NewInvoiceRepo(db *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

func (r *InvoiceRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{})
}

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func ensureCustomerExists(ctx context.Context, q queryer, customerID string) error {
	const sql = `SELECT 1 FROM customers WHERE id = $1::uuid`
	var one int
	return q.QueryRow(ctx, sql, customerID).Scan(&one)
}

// lockProductForInvoice serializes concurrent invoice creation against the
// same product and returns the name/rate snapshot alongside current stock.
func lockProductForInvoice(ctx context.Context, tx pgx.Tx, productID string) (name string, rate float64, stock int, err error) {
	const q = `
SELECT name, rate::float8, stock
FROM products
WHERE id = $1::uuid AND is_active
FOR UPDATE;
`
	if err := tx.QueryRow(ctx, q, productID).Scan(&name, &rate, &stock); err != nil {
		return "", 0, 0, err
	}
	return name, rate, stock, nil
}

func deductStock(ctx context.Context, tx pgx.Tx, productID string, qty int) error {
	const q = `
UPDATE products
SET stock = stock - $2,
    updated_at = now()
WHERE id = $1::uuid;
`
	_, err := tx.Exec(ctx, q, productID, qty)
	return err
}

const invoiceCols = `
  id::text, invoice_no, customer_id::text,
  total_amount::float8, paid_amount::float8, due_amount::float8,
  invoice_date, notes, created_by::text, created_at, updated_at`

func insertInvoice(ctx context.Context, tx pgx.Tx, invoiceNo, customerID string, invoiceDate time.Time, notes *string, createdBy string) (*InvoiceRow, error) {
	const q = `
INSERT INTO invoices (invoice_no, customer_id, invoice_date, notes, created_by)
VALUES ($1, $2::uuid, $3, $4, $5::uuid)
RETURNING` + invoiceCols + `;`

	row := tx.QueryRow(ctx, q, invoiceNo, customerID, invoiceDate, notes, createdBy)
	return scanInvoice(row)
}

func insertInvoiceItem(ctx context.Context, tx pgx.Tx, invoiceID, productID, productName string, lineNo, qty int, rate, amount float64) (*InvoiceItemRow, error) {
	const q = `
INSERT INTO invoice_items (invoice_id, product_id, product_name, line_no, qty, rate, amount)
VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6::numeric, $7::numeric)
RETURNING id::text, invoice_id::text, product_id::text, product_name, qty, rate::float8, amount::float8;
`
	row := tx.QueryRow(ctx, q, invoiceID, productID, productName, lineNo, qty, rate, amount)

	var out InvoiceItemRow
	if err := row.Scan(&out.ID, &out.InvoiceID, &out.ProductID, &out.ProductName, &out.Qty, &out.Rate, &out.Amount); err != nil {
		return nil, err
	}
	return &out, nil
}

func updateInvoiceTotals(ctx context.Context, tx pgx.Tx, invoiceID string, total, paid float64) (*InvoiceRow, error) {
	const q = `
UPDATE invoices
SET total_amount = $2::numeric,
    paid_amount = $3::numeric,
    due_amount = ($2 - $3)::numeric,
    updated_at = now()
WHERE id = $1::uuid
RETURNING` + invoiceCols + `;`

	row := tx.QueryRow(ctx, q, invoiceID, total, paid)
	return scanInvoice(row)
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*InvoiceRow, error) {
	const q = `
SELECT` + invoiceCols + `
FROM invoices
WHERE id = $1::uuid
LIMIT 1;`

	return scanInvoice(r.db.QueryRow(ctx, q, id))
}

func (r *InvoiceRepo) List(ctx context.Context, customerID, createdBy *string, from, to *time.Time, limit, offset int) ([]InvoiceRow, error) {
	const q = `
SELECT` + invoiceCols + `
FROM invoices
WHERE ($1::uuid IS NULL OR customer_id = $1::uuid)
  AND ($2::uuid IS NULL OR created_by = $2::uuid)
  AND ($3::timestamptz IS NULL OR invoice_date >= $3)
  AND ($4::timestamptz IS NULL OR invoice_date <= $4)
ORDER BY invoice_date DESC, created_at DESC
LIMIT $5 OFFSET $6;`

	rows, err := r.db.Query(ctx, q, customerID, createdBy, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]InvoiceRow, 0, limit)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

func (r *InvoiceRepo) ListItems(ctx context.Context, invoiceID string) ([]InvoiceItemRow, error) {
	const q = `
SELECT id::text, invoice_id::text, product_id::text, product_name, qty, rate::float8, amount::float8
FROM invoice_items
WHERE invoice_id = $1::uuid
ORDER BY line_no ASC;
`
	rows, err := r.db.Query(ctx, q, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InvoiceItemRow
	for rows.Next() {
		var it InvoiceItemRow
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductName, &it.Qty, &it.Rate, &it.Amount); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*InvoiceRow, error) {
	var out InvoiceRow
	if err := row.Scan(
		&out.ID,
		&out.InvoiceNo,
		&out.CustomerID,
		&out.TotalAmount,
		&out.PaidAmount,
		&out.DueAmount,
		&out.InvoiceDate,
		&out.Notes,
		&out.CreatedBy,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}
