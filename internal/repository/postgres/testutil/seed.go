package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func MustInsertUser(t *testing.T, db *pgxpool.Pool, name, email, role string) string {
	t.Helper()

	uniq := fmt.Sprintf("%d", time.Now().UnixNano())
	emailUniq := fmt.Sprintf("%s.%s", uniq, email)

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO users (name, email, password_hash, role, is_active)
		VALUES ($1, $2, 'x', $3, true)
		RETURNING id::text
	`, name, emailUniq, role).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertCustomer(t *testing.T, db *pgxpool.Pool, name, area, createdBy string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO customers (name, area, created_by)
		VALUES ($1, $2, $3::uuid)
		RETURNING id::text
	`, name, area, createdBy).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertProduct(t *testing.T, db *pgxpool.Pool, name string, rate float64, stock int) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO products (name, rate, stock, is_active)
		VALUES ($1, $2::numeric, $3, true)
		RETURNING id::text
	`, name, rate, stock).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}
