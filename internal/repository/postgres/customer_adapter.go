package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	customeruc "github.com/navkar-traders/billing-backend/internal/usecase/customer"
)

type CustomerStoreAdapter struct {
	repo *CustomerRepo
}

func NewCustomerStoreAdapter(repo *CustomerRepo) *CustomerStoreAdapter {
	return &CustomerStoreAdapter{repo: repo}
}

func (a *CustomerStoreAdapter) Create(ctx context.Context, in customeruc.CreateInput) (*customeruc.Customer, error) {
	row, err := a.repo.Create(ctx, CustomerRow{
		Name:      in.Name,
		Phone:     in.Phone,
		Area:      in.Area,
		Address:   in.Address,
		CreatedBy: in.CreatedBy,
	})
	if err != nil {
		return nil, err
	}
	return mapCustomer(row), nil
}

func (a *CustomerStoreAdapter) GetByID(ctx context.Context, id string) (*customeruc.Customer, error) {
	row, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customeruc.ErrNotFound
		}
		return nil, err
	}
	return mapCustomer(row), nil
}

func (a *CustomerStoreAdapter) List(ctx context.Context, q customeruc.ListQuery) ([]customeruc.Customer, error) {
	rows, err := a.repo.List(ctx, q.Area, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]customeruc.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, *mapCustomer(&rows[i]))
	}
	return out, nil
}

func (a *CustomerStoreAdapter) Update(ctx context.Context, id string, in customeruc.UpdateInput) (*customeruc.Customer, error) {
	rowIn := CustomerRow{}
	if in.Name != nil {
		rowIn.Name = *in.Name
	}
	rowIn.Phone = in.Phone
	rowIn.Area = in.Area
	rowIn.Address = in.Address

	row, err := a.repo.Update(ctx, id, rowIn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customeruc.ErrNotFound
		}
		return nil, err
	}
	return mapCustomer(row), nil
}

func (a *CustomerStoreAdapter) Delete(ctx context.Context, id string) error {
	if err := a.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customeruc.ErrNotFound
		}
		return err
	}
	return nil
}

func mapCustomer(r *CustomerRow) *customeruc.Customer {
	return &customeruc.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Area:      r.Area,
		Address:   r.Address,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Compile-time check
var _ customeruc.Store = (*CustomerStoreAdapter)(nil)
