package payment

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvoiceMissing = errors.New("invoice not found")
)

type Payment struct {
	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoiceId"`
	Method      string    `json:"method"` // cash | transfer
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"paymentDate"`
	Note        *string   `json:"note,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InvoicePaymentState is the invoice's paid/due figures after a payment is
// recorded, recomputed from the payment rows inside the same transaction.
type InvoicePaymentState struct {
	InvoiceID   string  `json:"invoiceId"`
	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount"`
	DueAmount   float64 `json:"dueAmount"`
}

type Store interface {
	Create(ctx context.Context, in CreateInput) (*Payment, *InvoicePaymentState, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]Payment, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

type CreateInput struct {
	InvoiceID   string     `json:"-"`
	Method      string     `json:"method"`
	Amount      float64    `json:"amount"`
	Note        *string    `json:"note"`
	PaymentDate *time.Time `json:"paymentDate"` // optional (default now)
	CreatedBy   string     `json:"-"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Payment, *InvoicePaymentState, error) {
	if strings.TrimSpace(in.InvoiceID) == "" {
		return nil, nil, ErrInvalidInput
	}
	m := strings.TrimSpace(in.Method)
	if m != "cash" && m != "transfer" {
		return nil, nil, ErrInvalidInput
	}
	in.Method = m

	if in.Amount <= 0 {
		return nil, nil, ErrInvalidInput
	}

	return u.store.Create(ctx, in)
}

func (u *Usecase) ListByInvoice(ctx context.Context, invoiceID string) ([]Payment, error) {
	if strings.TrimSpace(invoiceID) == "" {
		return nil, ErrInvalidInput
	}
	return u.store.ListByInvoice(ctx, invoiceID)
}
