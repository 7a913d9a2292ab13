package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	invoiceuc "github.com/navkar-traders/billing-backend/internal/usecase/invoice"
)

type InvoiceStoreAdapter struct {
	repo *InvoiceRepo
	db   *pgxpool.Pool
}

func NewInvoiceStoreAdapter(repo *InvoiceRepo, db *pgxpool.Pool) *InvoiceStoreAdapter {
	return &InvoiceStoreAdapter{repo: repo, db: db}
}

func (a *InvoiceStoreAdapter) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	err := ensureCustomerExists(ctx, a.db, customerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Create runs the whole invoice write as one database transaction: product
// rows are locked, stock is checked and decremented, the name/rate snapshot
// goes onto each item, and totals are set, all atomically with the insert.
func (a *InvoiceStoreAdapter) Create(ctx context.Context, in invoiceuc.CreateInput, invoiceNo string) (*invoiceuc.Invoice, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRow, err := insertInvoice(ctx, tx, invoiceNo, in.CustomerID, *in.InvoiceDate, in.Notes, in.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, invoiceuc.ErrDuplicateNumber
		}
		return nil, err
	}

	var (
		items []invoiceuc.Item
		total float64
	)

	for i, it := range in.Items {
		name, rate, stock, err := lockProductForInvoice(ctx, tx, it.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", invoiceuc.ErrProductMissing, it.ProductID)
			}
			return nil, err
		}

		if stock < it.Qty {
			return nil, fmt.Errorf("%w: product=%s available=%d requested=%d",
				invoiceuc.ErrInsufficientStock, name, stock, it.Qty)
		}

		if err := deductStock(ctx, tx, it.ProductID, it.Qty); err != nil {
			return nil, err
		}

		amount := rate * float64(it.Qty)
		total += amount

		itemRow, err := insertInvoiceItem(ctx, tx, invRow.ID, it.ProductID, name, i+1, it.Qty, rate, amount)
		if err != nil {
			return nil, err
		}
		items = append(items, mapInvoiceItemRow(itemRow))
	}

	if in.PaidAmount > total {
		return nil, invoiceuc.ErrInvalidInput
	}

	finalRow, err := updateInvoiceTotals(ctx, tx, invRow.ID, total, in.PaidAmount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out := mapInvoiceRow(finalRow)
	out.Items = items
	return out, nil
}

func (a *InvoiceStoreAdapter) List(ctx context.Context, q invoiceuc.ListQuery) ([]invoiceuc.Invoice, error) {
	rows, err := a.repo.List(ctx, q.CustomerID, q.CreatedBy, q.FromDate, q.ToDate, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]invoiceuc.Invoice, 0, len(rows))
	for i := range rows {
		out = append(out, *mapInvoiceRow(&rows[i]))
	}
	return out, nil
}

func (a *InvoiceStoreAdapter) GetByID(ctx context.Context, id string) (*invoiceuc.Invoice, error) {
	row, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoiceuc.ErrNotFound
		}
		return nil, err
	}

	itemRows, err := a.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	out := mapInvoiceRow(row)
	out.Items = make([]invoiceuc.Item, 0, len(itemRows))
	for i := range itemRows {
		out.Items = append(out.Items, mapInvoiceItemRow(&itemRows[i]))
	}
	return out, nil
}

func mapInvoiceRow(r *InvoiceRow) *invoiceuc.Invoice {
	return &invoiceuc.Invoice{
		ID:          r.ID,
		InvoiceNo:   r.InvoiceNo,
		CustomerID:  r.CustomerID,
		TotalAmount: r.TotalAmount,
		PaidAmount:  r.PaidAmount,
		DueAmount:   r.DueAmount,
		InvoiceDate: r.InvoiceDate,
		Notes:       r.Notes,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func mapInvoiceItemRow(r *InvoiceItemRow) invoiceuc.Item {
	return invoiceuc.Item{
		ID:          r.ID,
		InvoiceID:   r.InvoiceID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Qty:         r.Qty,
		Rate:        r.Rate,
		Amount:      r.Amount,
	}
}

// Compile-time check
var _ invoiceuc.Store = (*InvoiceStoreAdapter)(nil)
