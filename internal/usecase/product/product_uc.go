package product

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rate      float64   `json:"rate"`
	Stock     int       `json:"stock"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store interface {
	Create(ctx context.Context, name string, rate float64, stock int) (*Product, error)
	List(ctx context.Context, limit, offset int) ([]Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

type CreateInput struct {
	Name  string  `json:"name"`
	Rate  float64 `json:"rate"`
	Stock int     `json:"stock"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Rate < 0 || in.Stock < 0 {
		return nil, ErrInvalidInput
	}
	return u.store.Create(ctx, in.Name, in.Rate, in.Stock)
}

func (u *Usecase) List(ctx context.Context, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.store.List(ctx, limit, offset)
}

type UpdateInput struct {
	Name     *string  `json:"name"`
	Rate     *float64 `json:"rate"`
	Stock    *int     `json:"stock"`
	IsActive *bool    `json:"isActive"`
}

func (u *Usecase) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if in.Rate != nil && *in.Rate < 0 {
		return nil, ErrInvalidInput
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, ErrInvalidInput
	}
	return u.store.Update(ctx, id, in)
}

func (u *Usecase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return u.store.Delete(ctx, id)
}
