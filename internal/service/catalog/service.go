package catalog

import (
	"context"
	"errors"
	"strings"

	"ecom-api/internal/domain"
	productrepo "ecom-api/internal/repository/product"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo   productRepo
	ledger ledgerRepo
}

type productRepo interface {
	List(ctx context.Context, filters productrepo.ListFilters) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetDetail(ctx context.Context, id string) (*domain.ProductDetail, error)
	Create(ctx context.Context, in productrepo.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in productrepo.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type ledgerRepo interface {
	AdjustByProduct(ctx context.Context, productID string, delta int) (*domain.InventoryRecord, error)
}

func New(repo productrepo.Repository, ledger ledgerRepo) *Service {
	return &Service{repo: repo, ledger: ledger}
}

type ListInput struct {
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	ImageURL    string          `json:"image"`
	Stock       int             `json:"stock"`
}

func (s *Service) List(ctx context.Context, in ListInput) ([]domain.Product, error) {
	return s.repo.List(ctx, productrepo.ListFilters{
		CategoryID: in.CategoryID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
	})
}

func (s *Service) GetDetail(ctx context.Context, id string) (*domain.ProductDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, productrepo.CreateInput{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		CategoryID:   in.CategoryID,
		ImageURL:     in.ImageURL,
		InitialStock: in.Stock,
	})
}

func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, productrepo.UpdateInput{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Purchase is the buy-now path: a direct ledger debit that leaves no order
// record behind.
func (s *Service) Purchase(ctx context.Context, productID string, quantity int) (*domain.InventoryRecord, error) {
	if quantity < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	rec, err := s.ledger.AdjustByProduct(ctx, productID, -quantity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrOutOfStock
		}
		return nil, err
	}
	return rec, nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if in.Price.IsNegative() {
		return &domain.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return &domain.ValidationError{Field: "categoryId", Reason: "required"}
	}
	if in.Stock < 0 {
		return &domain.ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return nil
}
