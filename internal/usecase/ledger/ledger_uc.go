package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidQuery     = errors.New("customer id or area is required")
	ErrStoreUnavailable = errors.New("store unavailable")
)

const (
	paymentVoucherPrefix = "PAY-"
	displayDateLayout    = "02-01-2006"
)

type Store interface {
	FindCustomerIDsByArea(ctx context.Context, area string) ([]string, error)
	FindInvoices(ctx context.Context, f InvoiceFilter) ([]Invoice, error)
	FindPayments(ctx context.Context, f PaymentFilter) ([]Payment, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

// Generate builds the customer ledger: one debit row per invoice line item,
// one credit row per payment (plus a reconciliation credit when an invoice's
// recorded paid amount is not fully explained by payment records), sorted
// chronologically with a running balance.
func (u *Usecase) Generate(ctx context.Context, q Query) (*Result, error) {
	customerID := strVal(q.CustomerID)
	area := strVal(q.Area)

	if customerID == "" && area == "" {
		return nil, ErrInvalidQuery
	}

	var customerIDs []string
	if customerID != "" {
		customerIDs = []string{customerID}
	} else {
		ids, err := u.store.FindCustomerIDsByArea(ctx, area)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if len(ids) == 0 {
			return emptyResult(), nil
		}
		customerIDs = ids
	}

	from := floorDay(q.FromDate)
	to := ceilDay(q.ToDate)

	invoices, err := u.store.FindInvoices(ctx, InvoiceFilter{
		CustomerIDs: customerIDs,
		CreatedBy:   q.CreatedBy,
		FromDate:    from,
		ToDate:      to,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(invoices) == 0 {
		return emptyResult(), nil
	}

	invoiceIDs := make([]string, 0, len(invoices))
	for i := range invoices {
		invoiceIDs = append(invoiceIDs, invoices[i].ID)
	}

	payments, err := u.store.FindPayments(ctx, PaymentFilter{
		InvoiceIDs: invoiceIDs,
		CreatedBy:  q.CreatedBy,
		FromDate:   from,
		ToDate:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	entries := buildEntries(invoices, payments)

	// Stable: equal dates keep document order, which is
	// invoice-items-then-payments.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SortDate.Before(entries[j].SortDate)
	})

	moves := make([]Movement, len(entries))
	for i := range entries {
		moves[i] = Movement{Debit: entries[i].Debit, Credit: entries[i].Credit}
	}
	for i, bal := range RunningBalances(moves) {
		entries[i].Balance = bal
	}

	return &Result{
		Entries: entries,
		Summary: summarize(invoices, len(entries)),
	}, nil
}

func buildEntries(invoices []Invoice, payments []Payment) []Entry {
	entries := make([]Entry, 0, len(invoices)+len(payments))

	invoiceNoByID := make(map[string]string, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		invoiceNoByID[inv.ID] = inv.InvoiceNo
		for _, it := range inv.Items {
			entries = append(entries, Entry{
				VoucherNo:   inv.InvoiceNo,
				Date:        inv.InvoiceDate.Format(displayDateLayout),
				SortDate:    inv.InvoiceDate,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				Rate:        it.Rate,
				Amount:      it.Amount,
				Debit:       it.Amount,
				CustomerID:  inv.CustomerID,
				CreatedBy:   inv.CreatedBy,
			})
		}
	}

	paidByInvoice := make(map[string]float64, len(invoices))
	for _, p := range payments {
		paidByInvoice[p.InvoiceID] += p.Amount
		entries = append(entries, Entry{
			VoucherNo:   paymentVoucherPrefix + tail4(p.ID),
			Date:        p.PaymentDate.Format(displayDateLayout),
			SortDate:    p.PaymentDate,
			ProductName: "Payment against " + invoiceNoByID[p.InvoiceID],
			Credit:      p.Amount,
			CustomerID:  customerOf(invoices, p.InvoiceID),
			CreatedBy:   p.CreatedBy,
		})
	}

	// Reconciliation: invoices recorded as paid (fully or partially) before
	// payments were tracked as separate records get a synthetic credit for
	// the shortfall, dated on the invoice itself.
	for i := range invoices {
		inv := &invoices[i]
		shortfall := inv.PaidAmount - paidByInvoice[inv.ID]
		if shortfall <= 0 {
			continue
		}
		entries = append(entries, Entry{
			VoucherNo:   paymentVoucherPrefix + tail4(inv.InvoiceNo),
			Date:        inv.InvoiceDate.Format(displayDateLayout),
			SortDate:    inv.InvoiceDate,
			ProductName: "Payment against " + inv.InvoiceNo,
			Credit:      shortfall,
			CustomerID:  inv.CustomerID,
			CreatedBy:   inv.CreatedBy,
		})
	}

	return entries
}

// summarize trusts the invoice record as source of truth: TotalPaid is the
// stored paid amount, not re-derived from payment entries. The two agree when
// reconciliation has run, but a stored invoice with totalAmount !=
// paidAmount + dueAmount will surface here as-is.
func summarize(invoices []Invoice, entryCount int) Summary {
	var s Summary
	for i := range invoices {
		s.TotalCredit += invoices[i].TotalAmount
		s.TotalPaid += invoices[i].PaidAmount
	}
	s.CurrentBalance = s.TotalCredit - s.TotalPaid
	s.TotalEntries = entryCount
	return s
}

func emptyResult() *Result {
	return &Result{Entries: []Entry{}}
}

func customerOf(invoices []Invoice, invoiceID string) string {
	for i := range invoices {
		if invoices[i].ID == invoiceID {
			return invoices[i].CustomerID
		}
	}
	return ""
}

func tail4(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
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
