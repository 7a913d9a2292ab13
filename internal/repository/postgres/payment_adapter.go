package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	payuc "github.com/navkar-traders/billing-backend/internal/usecase/payment"
)

type PaymentStoreAdapter struct {
	repo *PaymentRepo
}

func NewPaymentStoreAdapter(repo *PaymentRepo) *PaymentStoreAdapter {
	return &PaymentStoreAdapter{repo: repo}
}

func (a *PaymentStoreAdapter) Create(ctx context.Context, in payuc.CreateInput) (*payuc.Payment, *payuc.InvoicePaymentState, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// lock invoice row (ensures invoice exists + prevents paid/due races)
	if _, _, err := lockInvoiceForPayment(ctx, tx, in.InvoiceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, payuc.ErrInvoiceMissing
		}
		return nil, nil, err
	}

	paymentDate := time.Now()
	if in.PaymentDate != nil {
		paymentDate = *in.PaymentDate
	}

	row, err := insertPayment(ctx, tx, PaymentRow{
		InvoiceID:   in.InvoiceID,
		Method:      in.Method,
		Amount:      in.Amount,
		PaymentDate: paymentDate,
		Note:        in.Note,
		CreatedBy:   in.CreatedBy,
	})
	if err != nil {
		return nil, nil, err
	}

	stateRow, err := applyPaymentToInvoice(ctx, tx, in.InvoiceID, in.Amount)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return mapPaymentRow(row), mapPaymentStateRow(stateRow), nil
}

func (a *PaymentStoreAdapter) ListByInvoice(ctx context.Context, invoiceID string) ([]payuc.Payment, error) {
	rows, err := a.repo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	out := make([]payuc.Payment, 0, len(rows))
	for i := range rows {
		out = append(out, *mapPaymentRow(&rows[i]))
	}
	return out, nil
}

func mapPaymentRow(r *PaymentRow) *payuc.Payment {
	return &payuc.Payment{
		ID:          r.ID,
		InvoiceID:   r.InvoiceID,
		Method:      r.Method,
		Amount:      r.Amount,
		PaymentDate: r.PaymentDate,
		Note:        r.Note,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func mapPaymentStateRow(r *InvoicePaymentStateRow) *payuc.InvoicePaymentState {
	return &payuc.InvoicePaymentState{
		InvoiceID:   r.InvoiceID,
		TotalAmount: r.TotalAmount,
		PaidAmount:  r.PaidAmount,
		DueAmount:   r.DueAmount,
	}
}

// Compile-time check
var _ payuc.Store = (*PaymentStoreAdapter)(nil)
