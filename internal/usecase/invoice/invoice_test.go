package invoice

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	customers map[string]bool

	createdNo string
	createdIn *CreateInput
}

func (f *fakeStore) CustomerExists(_ context.Context, id string) (bool, error) {
	return f.customers[id], nil
}

func (f *fakeStore) Create(_ context.Context, in CreateInput, invoiceNo string) (*Invoice, error) {
	f.createdNo = invoiceNo
	f.createdIn = &in
	return &Invoice{ID: "inv-1", InvoiceNo: invoiceNo, CustomerID: in.CustomerID}, nil
}

func (f *fakeStore) List(_ context.Context, _ ListQuery) ([]Invoice, error) { return nil, nil }

func (f *fakeStore) GetByID(_ context.Context, _ string) (*Invoice, error) { return nil, nil }

func TestNewInvoiceNumber_Format(t *testing.T) {
	at := time.Date(2025, 10, 5, 14, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^INV251005\d{4}$`)
	for i := 0; i < 50; i++ {
		no := NewInvoiceNumber(at)
		require.Regexp(t, re, no)
	}
}

func TestCreate_Validation(t *testing.T) {
	store := &fakeStore{customers: map[string]bool{"c1": true}}
	uc := New(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, CreateInput{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(ctx, CreateInput{CustomerID: "c1"})
	require.ErrorIs(t, err, ErrInvalidInput, "no items")

	_, err = uc.Create(ctx, CreateInput{
		CustomerID: "c1",
		Items:      []CreateItemIn{{ProductID: "p1", Qty: 0}},
	})
	require.ErrorIs(t, err, ErrInvalidInput, "zero qty")

	_, err = uc.Create(ctx, CreateInput{
		CustomerID: "c1",
		PaidAmount: -1,
		Items:      []CreateItemIn{{ProductID: "p1", Qty: 1}},
	})
	require.ErrorIs(t, err, ErrInvalidInput, "negative paid amount")

	_, err = uc.Create(ctx, CreateInput{
		CustomerID: "missing",
		Items:      []CreateItemIn{{ProductID: "p1", Qty: 1}},
	})
	require.ErrorIs(t, err, ErrCustomerMissing)
}

func TestCreate_NumberFromInvoiceDate(t *testing.T) {
	store := &fakeStore{customers: map[string]bool{"c1": true}}
	uc := New(store)

	date := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	out, err := uc.Create(context.Background(), CreateInput{
		CustomerID:  "c1",
		InvoiceDate: &date,
		Items:       []CreateItemIn{{ProductID: "p1", Qty: 2}},
	})
	require.NoError(t, err)
	require.Regexp(t, `^INV250309\d{4}$`, out.InvoiceNo)
	require.Equal(t, date, *store.createdIn.InvoiceDate)
}

func TestCreate_DefaultsInvoiceDate(t *testing.T) {
	store := &fakeStore{customers: map[string]bool{"c1": true}}
	uc := New(store)
	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	_, err := uc.Create(context.Background(), CreateInput{
		CustomerID: "c1",
		Items:      []CreateItemIn{{ProductID: "p1", Qty: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, fixed, *store.createdIn.InvoiceDate)
	require.Regexp(t, `^INV250601\d{4}$`, store.createdNo)
}

func TestList_NormalizesRange(t *testing.T) {
	from := time.Date(2025, 10, 1, 13, 45, 0, 0, time.UTC)
	to := time.Date(2025, 10, 7, 2, 0, 0, 0, time.UTC)

	captured := ListQuery{}
	wrapped := &listCapture{fakeStore: &fakeStore{}, out: &captured}
	uc := New(wrapped)

	_, err := uc.List(context.Background(), ListQuery{FromDate: &from, ToDate: &to})
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), *captured.FromDate)
	require.Equal(t, time.Date(2025, 10, 7, 23, 59, 59, 999000000, time.UTC), *captured.ToDate)
	require.Equal(t, 20, captured.Limit)
}

type listCapture struct {
	*fakeStore
	out *ListQuery
}

func (l *listCapture) List(ctx context.Context, q ListQuery) ([]Invoice, error) {
	*l.out = q
	return l.fakeStore.List(ctx, q)
}
