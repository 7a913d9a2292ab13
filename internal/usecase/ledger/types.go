package ledger

import "time"

// Query filters one ledger request. At least one of CustomerID or Area must
// be set; Area is only consulted when CustomerID is absent.
type Query struct {
	CustomerID *string
	Area       *string
	CreatedBy  *string
	FromDate   *time.Time
	ToDate     *time.Time
}

// Entry is one ledger row. Entries are built fresh per request and never
// persisted; SortDate is the raw chronological key and is not serialized.
type Entry struct {
	VoucherNo   string    `json:"voucherNo"`
	Date        string    `json:"date"` // dd-mm-yyyy display form
	SortDate    time.Time `json:"-"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Rate        float64   `json:"rate"`
	Amount      float64   `json:"amount"`
	Debit       float64   `json:"debit"`
	Credit      float64   `json:"credit"`
	Balance     float64   `json:"balance"`
	CustomerID  string    `json:"customerId"`
	CreatedBy   string    `json:"createdBy,omitempty"`
}

type Summary struct {
	TotalCredit    float64 `json:"totalCredit"`
	TotalPaid      float64 `json:"totalPaid"`
	CurrentBalance float64 `json:"currentBalance"`
	TotalEntries   int     `json:"totalEntries"`
}

type Result struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

// Invoice is the read-only upstream shape the aggregator consumes.
type Invoice struct {
	ID          string
	InvoiceNo   string
	CustomerID  string
	Items       []InvoiceItem
	TotalAmount float64
	PaidAmount  float64
	DueAmount   float64
	InvoiceDate time.Time
	CreatedBy   string
}

type InvoiceItem struct {
	ProductName string
	Quantity    int
	Rate        float64
	Amount      float64
}

type Payment struct {
	ID          string
	InvoiceID   string
	Amount      float64
	PaymentDate time.Time
	CreatedBy   string
}

type InvoiceFilter struct {
	CustomerIDs []string
	CreatedBy   *string
	FromDate    *time.Time // inclusive, floored to start of day
	ToDate      *time.Time // inclusive, ceilinged to end of day
}

type PaymentFilter struct {
	InvoiceIDs []string
	CreatedBy  *string
	FromDate   *time.Time
	ToDate     *time.Time
}
