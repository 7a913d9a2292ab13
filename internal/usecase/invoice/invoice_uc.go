package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("invoice not found")
	ErrCustomerMissing   = errors.New("customer not found")
	ErrProductMissing    = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateNumber   = errors.New("invoice number already exists")
)

type Store interface {
	CustomerExists(ctx context.Context, customerID string) (bool, error)

	// Create persists the invoice, its items and the stock decrement in one
	// database transaction.
	Create(ctx context.Context, in CreateInput, invoiceNo string) (*Invoice, error)
	List(ctx context.Context, q ListQuery) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
}

type Usecase struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Usecase {
	return &Usecase{store: store, now: time.Now}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Invoice, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Qty <= 0 {
			return nil, ErrInvalidInput
		}
	}
	if in.PaidAmount < 0 {
		return nil, ErrInvalidInput
	}
	if in.InvoiceDate == nil {
		now := u.now()
		in.InvoiceDate = &now
	}

	ok, err := u.store.CustomerExists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerMissing, in.CustomerID)
	}

	return u.store.Create(ctx, in, NewInvoiceNumber(*in.InvoiceDate))
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]Invoice, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.FromDate = floorDay(q.FromDate)
	q.ToDate = ceilDay(q.ToDate)
	return u.store.List(ctx, q)
}

func (u *Usecase) GetByID(ctx context.Context, id string) (*Invoice, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return u.store.GetByID(ctx, id)
}

func floorDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return &d
}

func ceilDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
	return &d
}
