package product

import (
	"context"

	"ecom-api/internal/domain"
	"github.com/shopspring/decimal"
)

type ListFilters struct {
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

type CreateInput struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	CategoryID   string
	ImageURL     string
	InitialStock int
}

type UpdateInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  string
	ImageURL    string
	Stock       int
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetDetail(ctx context.Context, id string) (*domain.ProductDetail, error)
	Create(ctx context.Context, in CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
