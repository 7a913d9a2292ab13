package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRow struct {
	ID          string
	InvoiceID   string
	Method      string
	Amount      float64
	PaymentDate time.Time
	Note        *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type InvoicePaymentStateRow struct {
	InvoiceID   string
	TotalAmount float64
	PaidAmount  float64
	DueAmount   float64
}

type PaymentRepo struct {
	db *pgxpool.Pool
}

func NewPaymentRepo(db *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{})
}

func lockInvoiceForPayment(ctx context.Context, tx pgx.Tx, invoiceID string) (total float64, paid float64, err error) {
	// Lock the invoice row to avoid races on paid_amount/due_amount
	const q = `
SELECT total_amount::float8, paid_amount::float8
FROM invoices
WHERE id = $1::uuid
FOR UPDATE;
`
	if err := tx.QueryRow(ctx, q, invoiceID).Scan(&total, &paid); err != nil {
		return 0, 0, err
	}
	return total, paid, nil
}

const paymentCols = `
  id::text, invoice_id::text, method, amount::float8, payment_date,
  note, created_by::text, created_at, updated_at`

func insertPayment(ctx context.Context, tx pgx.Tx, in PaymentRow) (*PaymentRow, error) {
	const q = `
INSERT INTO payments (invoice_id, method, amount, payment_date, note, created_by)
VALUES ($1::uuid, $2, $3::numeric, COALESCE($4, now()), $5, $6::uuid)
RETURNING` + paymentCols + `;`

	row := tx.QueryRow(ctx, q,
		in.InvoiceID,
		in.Method,
		in.Amount,
		in.PaymentDate,
		in.Note,
		in.CreatedBy,
	)
	return scanPayment(row)
}

// applyPaymentToInvoice advances the invoice's stored paid/due figures by the
// payment amount. The stored paid_amount is the source of truth, not a sum
// over payment rows: invoices can carry paid amounts recorded before payment
// rows existed (the ledger reconciles those).
func applyPaymentToInvoice(ctx context.Context, tx pgx.Tx, invoiceID string, amount float64) (*InvoicePaymentStateRow, error) {
	const q = `
UPDATE invoices
SET paid_amount = paid_amount + $2::numeric,
    due_amount = total_amount - (paid_amount + $2::numeric),
    updated_at = now()
WHERE id = $1::uuid
RETURNING id::text, total_amount::float8, paid_amount::float8, due_amount::float8;
`
	var out InvoicePaymentStateRow
	if err := tx.QueryRow(ctx, q, invoiceID, amount).Scan(
		&out.InvoiceID,
		&out.TotalAmount,
		&out.PaidAmount,
		&out.DueAmount,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]PaymentRow, error) {
	const q = `
SELECT` + paymentCols + `
FROM payments
WHERE invoice_id = $1::uuid
ORDER BY payment_date DESC, created_at DESC;`

	rows, err := r.db.Query(ctx, q, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PaymentRow, 0, 10)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*PaymentRow, error) {
	var out PaymentRow
	if err := row.Scan(
		&out.ID,
		&out.InvoiceID,
		&out.Method,
		&out.Amount,
		&out.PaymentDate,
		&out.Note,
		&out.CreatedBy,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}
