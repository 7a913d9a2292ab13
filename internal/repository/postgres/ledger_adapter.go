package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	ledgeruc "github.com/navkar-traders/billing-backend/internal/usecase/ledger"
)

// LedgerStoreAdapter feeds the ledger aggregator. It only reads; the
// aggregator owns all derivation.
type LedgerStoreAdapter struct {
	db *pgxpool.Pool
}

func NewLedgerStoreAdapter(db *pgxpool.Pool) *LedgerStoreAdapter {
	return &LedgerStoreAdapter{db: db}
}

func (a *LedgerStoreAdapter) FindCustomerIDsByArea(ctx context.Context, area string) ([]string, error) {
	const q = `
SELECT id::text
FROM customers
WHERE area ILIKE '%' || $1 || '%';
`
	rows, err := a.db.Query(ctx, q, area)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// FindInvoices returns matching invoice headers with their items attached,
// ordered by invoice date then creation time so the aggregator sees a stable
// document order.
func (a *LedgerStoreAdapter) FindInvoices(ctx context.Context, f ledgeruc.InvoiceFilter) ([]ledgeruc.Invoice, error) {
	rows, err := a.db.Query(ctx, `
SELECT
  id::text, invoice_no, customer_id::text,
  total_amount::float8, paid_amount::float8, due_amount::float8,
  invoice_date, created_by::text
FROM invoices
WHERE customer_id = ANY($1::uuid[])
  AND ($2::uuid IS NULL OR created_by = $2::uuid)
  AND ($3::timestamptz IS NULL OR invoice_date >= $3)
  AND ($4::timestamptz IS NULL OR invoice_date <= $4)
ORDER BY invoice_date ASC, created_at ASC;
`, f.CustomerIDs, f.CreatedBy, f.FromDate, f.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []ledgeruc.Invoice
	index := map[string]int{}
	for rows.Next() {
		var inv ledgeruc.Invoice
		if err := rows.Scan(
			&inv.ID,
			&inv.InvoiceNo,
			&inv.CustomerID,
			&inv.TotalAmount,
			&inv.PaidAmount,
			&inv.DueAmount,
			&inv.InvoiceDate,
			&inv.CreatedBy,
		); err != nil {
			return nil, err
		}
		index[inv.ID] = len(invoices)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(invoices))
	for i := range invoices {
		ids = append(ids, invoices[i].ID)
	}

	itemRows, err := a.db.Query(ctx, `
SELECT invoice_id::text, product_name, qty, rate::float8, amount::float8
FROM invoice_items
WHERE invoice_id = ANY($1::uuid[])
ORDER BY invoice_id, line_no ASC;
`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			invoiceID string
			it        ledgeruc.InvoiceItem
		)
		if err := itemRows.Scan(&invoiceID, &it.ProductName, &it.Quantity, &it.Rate, &it.Amount); err != nil {
			return nil, err
		}
		if i, ok := index[invoiceID]; ok {
			invoices[i].Items = append(invoices[i].Items, it)
		}
	}
	return invoices, itemRows.Err()
}

func (a *LedgerStoreAdapter) FindPayments(ctx context.Context, f ledgeruc.PaymentFilter) ([]ledgeruc.Payment, error) {
	rows, err := a.db.Query(ctx, `
SELECT id::text, invoice_id::text, amount::float8, payment_date, created_by::text
FROM payments
WHERE invoice_id = ANY($1::uuid[])
  AND ($2::uuid IS NULL OR created_by = $2::uuid)
  AND ($3::timestamptz IS NULL OR payment_date >= $3)
  AND ($4::timestamptz IS NULL OR payment_date <= $4)
ORDER BY payment_date ASC, created_at ASC;
`, f.InvoiceIDs, f.CreatedBy, f.FromDate, f.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledgeruc.Payment
	for rows.Next() {
		var p ledgeruc.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.CreatedBy); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Compile-time check
var _ ledgeruc.Store = (*LedgerStoreAdapter)(nil)
