package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/navkar-traders/billing-backend/internal/repository/postgres/testutil"
	invoiceuc "github.com/navkar-traders/billing-backend/internal/usecase/invoice"
	ledgeruc "github.com/navkar-traders/billing-backend/internal/usecase/ledger"
)

func TestLedger_EndToEnd(t *testing.T) {
	db := testutil.MustOpenDB(t)
	defer db.Close()

	testutil.TruncateAll(t, db)

	ctx := context.Background()

	userID := testutil.MustInsertUser(t, db, "Owner", "owner@shop.local", "admin")
	custID := testutil.MustInsertCustomer(t, db, "Suresh Kirana", "Station Road", userID)
	prodID := testutil.MustInsertProduct(t, db, "Oil 15L", 2500, 20)

	invUC := invoiceuc.New(NewInvoiceStoreAdapter(NewInvoiceRepo(db), db))

	// invoice of 5,000 with 2,000 recorded as paid upfront, no payment rows:
	// the ledger must synthesize the reconciliation credit.
	inv, err := invUC.Create(ctx, invoiceuc.CreateInput{
		CustomerID: custID,
		PaidAmount: 2000,
		Items:      []invoiceuc.CreateItemIn{{ProductID: prodID, Qty: 2}},
		CreatedBy:  userID,
	})
	require.NoError(t, err)
	require.Equal(t, 5000.0, inv.TotalAmount)
	require.Equal(t, 3000.0, inv.DueAmount)

	ledUC := ledgeruc.New(NewLedgerStoreAdapter(db))

	res, err := ledUC.Generate(ctx, ledgeruc.Query{CustomerID: &custID})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	require.Equal(t, 5000.0, res.Entries[0].Debit)
	require.Equal(t, 2000.0, res.Entries[1].Credit)
	require.Equal(t, 3000.0, res.Entries[1].Balance)
	require.Equal(t, 3000.0, res.Summary.CurrentBalance)

	// area filter uses a case-insensitive substring match
	res, err = ledUC.Generate(ctx, ledgeruc.Query{Area: strPtr("station")})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	res, err = ledUC.Generate(ctx, ledgeruc.Query{Area: strPtr("no-such-area")})
	require.NoError(t, err)
	require.Empty(t, res.Entries)
	require.Equal(t, ledgeruc.Summary{}, res.Summary)
}

func TestLedger_StockDecrementedAtomically(t *testing.T) {
	db := testutil.MustOpenDB(t)
	defer db.Close()

	testutil.TruncateAll(t, db)

	ctx := context.Background()

	userID := testutil.MustInsertUser(t, db, "Owner", "owner@shop.local", "admin")
	custID := testutil.MustInsertCustomer(t, db, "Suresh Kirana", "Station Road", userID)
	prodID := testutil.MustInsertProduct(t, db, "Ghee 1kg", 600, 3)

	invUC := invoiceuc.New(NewInvoiceStoreAdapter(NewInvoiceRepo(db), db))

	_, err := invUC.Create(ctx, invoiceuc.CreateInput{
		CustomerID: custID,
		Items:      []invoiceuc.CreateItemIn{{ProductID: prodID, Qty: 2}},
		CreatedBy:  userID,
	})
	require.NoError(t, err)

	var stock int
	require.NoError(t, db.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1::uuid`, prodID).Scan(&stock))
	require.Equal(t, 1, stock)

	// insufficient stock rolls the whole invoice back
	_, err = invUC.Create(ctx, invoiceuc.CreateInput{
		CustomerID: custID,
		Items:      []invoiceuc.CreateItemIn{{ProductID: prodID, Qty: 5}},
		CreatedBy:  userID,
	})
	require.ErrorIs(t, err, invoiceuc.ErrInsufficientStock)

	require.NoError(t, db.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1::uuid`, prodID).Scan(&stock))
	require.Equal(t, 1, stock, "failed invoice must not decrement stock")

	var count int
	require.NoError(t, db.QueryRow(ctx, `SELECT count(*) FROM invoices`).Scan(&count))
	require.Equal(t, 1, count)
}

func strPtr(s string) *string { return &s }
