package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	productuc "github.com/navkar-traders/billing-backend/internal/usecase/product"
)

type ProductStoreAdapter struct {
	repo *ProductRepo
}

func NewProductStoreAdapter(repo *ProductRepo) *ProductStoreAdapter {
	return &ProductStoreAdapter{repo: repo}
}

func (a *ProductStoreAdapter) Create(ctx context.Context, name string, rate float64, stock int) (*productuc.Product, error) {
	row, err := a.repo.Create(ctx, name, rate, stock)
	if err != nil {
		return nil, err
	}
	return mapProduct(row), nil
}

func (a *ProductStoreAdapter) List(ctx context.Context, limit, offset int) ([]productuc.Product, error) {
	rows, err := a.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]productuc.Product, 0, len(rows))
	for i := range rows {
		out = append(out, *mapProduct(&rows[i]))
	}
	return out, nil
}

func (a *ProductStoreAdapter) Update(ctx context.Context, id string, in productuc.UpdateInput) (*productuc.Product, error) {
	row, err := a.repo.Update(ctx, id, in.Name, in.Rate, in.Stock, in.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, productuc.ErrNotFound
		}
		return nil, err
	}
	return mapProduct(row), nil
}

func (a *ProductStoreAdapter) Delete(ctx context.Context, id string) error {
	if err := a.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return productuc.ErrNotFound
		}
		return err
	}
	return nil
}

func mapProduct(r *ProductRow) *productuc.Product {
	return &productuc.Product{
		ID:        r.ID,
		Name:      r.Name,
		Rate:      r.Rate,
		Stock:     r.Stock,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Compile-time check
var _ productuc.Store = (*ProductStoreAdapter)(nil)
