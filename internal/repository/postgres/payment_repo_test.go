package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/navkar-traders/billing-backend/internal/repository/postgres/testutil"
	invoiceuc "github.com/navkar-traders/billing-backend/internal/usecase/invoice"
	payuc "github.com/navkar-traders/billing-backend/internal/usecase/payment"
)

func TestPayment_CreateAndList_UpdatesInvoiceState(t *testing.T) {
	db := testutil.MustOpenDB(t)
	defer db.Close()

	testutil.TruncateAll(t, db)

	ctx := context.Background()

	userID := testutil.MustInsertUser(t, db, "Clerk", "clerk@shop.local", "staff")
	custID := testutil.MustInsertCustomer(t, db, "Ramesh Traders", "Market Road", userID)
	prodID := testutil.MustInsertProduct(t, db, "Rice 25kg", 5000, 10)

	// invoice: 1 item qty 2 => 10,000
	invRepo := NewInvoiceRepo(db)
	invStore := NewInvoiceStoreAdapter(invRepo, db)
	invUC := invoiceuc.New(invStore)

	inv, err := invUC.Create(ctx, invoiceuc.CreateInput{
		CustomerID: custID,
		Items:      []invoiceuc.CreateItemIn{{ProductID: prodID, Qty: 2}},
		CreatedBy:  userID,
	})
	require.NoError(t, err)
	require.Equal(t, 10000.0, inv.TotalAmount)
	require.Equal(t, 10000.0, inv.DueAmount)

	pRepo := NewPaymentRepo(db)
	pStore := NewPaymentStoreAdapter(pRepo)
	pUC := payuc.New(pStore)

	now := time.Now().UTC()

	// pay partial 4,000
	p1, state1, err := pUC.Create(ctx, payuc.CreateInput{
		InvoiceID:   inv.ID,
		Method:      "cash",
		Amount:      4000,
		PaymentDate: &now,
		CreatedBy:   userID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, p1.ID)
	require.Equal(t, 4000.0, state1.PaidAmount)
	require.Equal(t, 6000.0, state1.DueAmount)

	// pay remaining 6,000
	_, state2, err := pUC.Create(ctx, payuc.CreateInput{
		InvoiceID: inv.ID,
		Method:    "transfer",
		Amount:    6000,
		CreatedBy: userID,
	})
	require.NoError(t, err)
	require.Equal(t, 10000.0, state2.PaidAmount)
	require.Equal(t, 0.0, state2.DueAmount)

	items, err := pUC.ListByInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestPayment_MissingInvoice(t *testing.T) {
	db := testutil.MustOpenDB(t)
	defer db.Close()

	testutil.TruncateAll(t, db)

	pUC := payuc.New(NewPaymentStoreAdapter(NewPaymentRepo(db)))

	_, _, err := pUC.Create(context.Background(), payuc.CreateInput{
		InvoiceID: "00000000-0000-0000-0000-000000000000",
		Method:    "cash",
		Amount:    100,
	})
	require.ErrorIs(t, err, payuc.ErrInvoiceMissing)
}
