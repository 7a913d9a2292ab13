package invoice

import "time"

type Invoice struct {
	ID          string    `json:"id"`
	InvoiceNo   string    `json:"invoiceNo"`
	CustomerID  string    `json:"customerId"`
	TotalAmount float64   `json:"totalAmount"`
	PaidAmount  float64   `json:"paidAmount"`
	DueAmount   float64   `json:"dueAmount"`
	InvoiceDate time.Time `json:"invoiceDate"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Items       []Item    `json:"items,omitempty"`
}

// Item snapshots the product name and rate at invoice time; later product
// edits do not change it.
type Item struct {
	ID          string  `json:"id"`
	InvoiceID   string  `json:"invoiceId"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Qty         int     `json:"qty"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

type CreateInput struct {
	CustomerID  string         `json:"customerId"`
	InvoiceDate *time.Time     `json:"invoiceDate"` // default now
	PaidAmount  float64        `json:"paidAmount"`  // upfront payment, optional
	Notes       *string        `json:"notes"`
	Items       []CreateItemIn `json:"items"`
	CreatedBy   string         `json:"-"`
}

type CreateItemIn struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type ListQuery struct {
	CustomerID *string
	CreatedBy  *string
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}
