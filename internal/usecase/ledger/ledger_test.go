package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	customersByArea map[string][]string
	invoices        []Invoice
	payments        []Payment

	areaCalls    int
	invoiceCalls int
	paymentCalls int

	failInvoices bool
}

func (f *fakeStore) FindCustomerIDsByArea(_ context.Context, area string) ([]string, error) {
	f.areaCalls++
	return f.customersByArea[area], nil
}

func (f *fakeStore) FindInvoices(_ context.Context, in InvoiceFilter) ([]Invoice, error) {
	f.invoiceCalls++
	if f.failInvoices {
		return nil, errors.New("connection refused")
	}
	want := map[string]bool{}
	for _, id := range in.CustomerIDs {
		want[id] = true
	}
	var out []Invoice
	for _, inv := range f.invoices {
		if !want[inv.CustomerID] {
			continue
		}
		if in.FromDate != nil && inv.InvoiceDate.Before(*in.FromDate) {
			continue
		}
		if in.ToDate != nil && inv.InvoiceDate.After(*in.ToDate) {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeStore) FindPayments(_ context.Context, in PaymentFilter) ([]Payment, error) {
	f.paymentCalls++
	want := map[string]bool{}
	for _, id := range in.InvoiceIDs {
		want[id] = true
	}
	var out []Payment
	for _, p := range f.payments {
		if want[p.InvoiceID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strptr(s string) *string { return &s }

func TestRunningBalances(t *testing.T) {
	moves := []Movement{
		{Debit: 1000},
		{Credit: 400},
		{Debit: 500},
		{Credit: 200},
		{Debit: 50, Credit: 0},
	}

	got := RunningBalances(moves)
	require.Len(t, got, len(moves))

	bal := 0.0
	for i, m := range moves {
		bal += m.Debit - m.Credit
		require.Equal(t, bal, got[i], "balance at %d", i)
	}
	require.Equal(t, []float64{1000, 600, 1100, 900, 950}, got)
}

func TestRunningBalances_Empty(t *testing.T) {
	require.Empty(t, RunningBalances(nil))
}

func TestGenerate_MissingFilter(t *testing.T) {
	store := &fakeStore{}
	uc := New(store)

	_, err := uc.Generate(context.Background(), Query{})
	require.ErrorIs(t, err, ErrInvalidQuery)

	require.Zero(t, store.areaCalls)
	require.Zero(t, store.invoiceCalls)
	require.Zero(t, store.paymentCalls)
}

func TestGenerate_EmptyArea(t *testing.T) {
	store := &fakeStore{customersByArea: map[string][]string{}}
	uc := New(store)

	res, err := uc.Generate(context.Background(), Query{Area: strptr("nowhere")})
	require.NoError(t, err)

	require.Empty(t, res.Entries)
	require.Equal(t, Summary{}, res.Summary)
	require.Zero(t, store.invoiceCalls, "should short-circuit before fetching invoices")
}

func TestGenerate_StoreFailure(t *testing.T) {
	store := &fakeStore{failInvoices: true}
	uc := New(store)

	res, err := uc.Generate(context.Background(), Query{CustomerID: strptr("c1")})
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.Nil(t, res, "no partial ledger on store failure")
}

func TestGenerate_Reconciliation(t *testing.T) {
	// Invoice paid 400 with no payment records: exactly one synthetic credit.
	store := &fakeStore{
		invoices: []Invoice{
			{
				ID:          "inv-aaaa-0001",
				InvoiceNo:   "INV2510011234",
				CustomerID:  "c1",
				Items:       []InvoiceItem{{ProductName: "Rice 25kg", Quantity: 10, Rate: 100, Amount: 1000}},
				TotalAmount: 1000,
				PaidAmount:  400,
				DueAmount:   600,
				InvoiceDate: day(2025, 10, 1),
			},
		},
	}
	uc := New(store)

	res, err := uc.Generate(context.Background(), Query{CustomerID: strptr("c1")})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	var credits []Entry
	for _, e := range res.Entries {
		if e.Credit > 0 {
			credits = append(credits, e)
		}
	}
	require.Len(t, credits, 1)
	require.Equal(t, 400.0, credits[0].Credit)
	require.Equal(t, "PAY-1234", credits[0].VoucherNo)
	require.Equal(t, "01-10-2025", credits[0].Date)

	require.Equal(t, 600.0, res.Entries[len(res.Entries)-1].Balance)
}

func TestGenerate_EndToEnd(t *testing.T) {
	store := &fakeStore{
		invoices: []Invoice{
			{
				ID:          "11111111-aaaa",
				InvoiceNo:   "INV2510010001",
				CustomerID:  "c1",
				Items:       []InvoiceItem{{ProductName: "Wheat 50kg", Quantity: 10, Rate: 100, Amount: 1000}},
				TotalAmount: 1000,
				PaidAmount:  1000,
				DueAmount:   0,
				InvoiceDate: day(2025, 10, 1),
			},
			{
				ID:          "22222222-bbbb",
				InvoiceNo:   "INV2510050002",
				CustomerID:  "c1",
				Items:       []InvoiceItem{{ProductName: "Sugar 10kg", Quantity: 5, Rate: 100, Amount: 500}},
				TotalAmount: 500,
				PaidAmount:  200,
				DueAmount:   300,
				InvoiceDate: day(2025, 10, 5),
			},
		},
		payments: []Payment{
			{ID: "pay-cccc-7890", InvoiceID: "22222222-bbbb", Amount: 200, PaymentDate: day(2025, 10, 5)},
		},
	}
	uc := New(store)

	res, err := uc.Generate(context.Background(), Query{CustomerID: strptr("c1")})
	require.NoError(t, err)
	require.Len(t, res.Entries, 4)

	// Inv-1 debit, reconciled credit for Inv-1, Inv-2 debit, explicit payment.
	e := res.Entries
	require.Equal(t, 1000.0, e[0].Debit)
	require.Equal(t, 1000.0, e[0].Balance)
	require.Equal(t, "INV2510010001", e[0].VoucherNo)

	require.Equal(t, 1000.0, e[1].Credit)
	require.Equal(t, 0.0, e[1].Balance)
	require.Equal(t, "PAY-0001", e[1].VoucherNo)

	require.Equal(t, 500.0, e[2].Debit)
	require.Equal(t, 500.0, e[2].Balance)

	require.Equal(t, 200.0, e[3].Credit)
	require.Equal(t, 300.0, e[3].Balance)
	require.Equal(t, "PAY-7890", e[3].VoucherNo)

	require.Equal(t, Summary{
		TotalCredit:    1500,
		TotalPaid:      1200,
		CurrentBalance: 300,
		TotalEntries:   4,
	}, res.Summary)
}

func TestGenerate_OrderingAndSummaryIdentity(t *testing.T) {
	store := &fakeStore{
		customersByArea: map[string][]string{"market road": {"c1", "c2"}},
		invoices: []Invoice{
			{
				ID: "i2", InvoiceNo: "INV2510100002", CustomerID: "c2",
				Items:       []InvoiceItem{{ProductName: "Salt", Quantity: 2, Rate: 20, Amount: 40}},
				TotalAmount: 40, DueAmount: 40,
				InvoiceDate: day(2025, 10, 10),
			},
			{
				ID: "i1", InvoiceNo: "INV2510020001", CustomerID: "c1",
				Items: []InvoiceItem{
					{ProductName: "Oil 5L", Quantity: 3, Rate: 150, Amount: 450},
					{ProductName: "Tea 1kg", Quantity: 1, Rate: 300, Amount: 300},
				},
				TotalAmount: 750, PaidAmount: 500, DueAmount: 250,
				InvoiceDate: day(2025, 10, 2),
			},
		},
		payments: []Payment{
			{ID: "p-0042", InvoiceID: "i1", Amount: 500, PaymentDate: day(2025, 10, 4)},
		},
	}
	uc := New(store)

	res, err := uc.Generate(context.Background(), Query{Area: strptr("market road")})
	require.NoError(t, err)
	require.Len(t, res.Entries, 4)

	for i := 1; i < len(res.Entries); i++ {
		require.False(t, res.Entries[i].SortDate.Before(res.Entries[i-1].SortDate),
			"entries out of order at %d", i)
	}

	// Items of the same invoice stay adjacent under the stable sort.
	require.Equal(t, res.Entries[0].VoucherNo, res.Entries[1].VoucherNo)

	require.Equal(t, res.Summary.CurrentBalance, res.Summary.TotalCredit-res.Summary.TotalPaid)
	require.Equal(t, 290.0, res.Summary.CurrentBalance)
	require.Equal(t, 4, res.Summary.TotalEntries)

	// Final balance reconciles with the summary when payments are consistent.
	require.Equal(t, res.Summary.CurrentBalance, res.Entries[len(res.Entries)-1].Balance)
}

func TestGenerate_DateRangeNormalization(t *testing.T) {
	late := time.Date(2025, 10, 5, 18, 30, 0, 0, time.UTC)
	store := &fakeStore{
		invoices: []Invoice{
			{
				ID: "i1", InvoiceNo: "INV2510050009", CustomerID: "c1",
				Items:       []InvoiceItem{{ProductName: "Ghee 1kg", Quantity: 1, Rate: 600, Amount: 600}},
				TotalAmount: 600, DueAmount: 600,
				InvoiceDate: late,
			},
		},
	}
	uc := New(store)

	// A toDate equal to the invoice's calendar day must include it even
	// though the stored timestamp is later in the day.
	from := day(2025, 10, 5)
	to := day(2025, 10, 5)
	res, err := uc.Generate(context.Background(), Query{
		CustomerID: strptr("c1"),
		FromDate:   &from,
		ToDate:     &to,
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	require.Equal(t, "05-10-2025", res.Entries[0].Date)
}
