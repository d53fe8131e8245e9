package cart

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"ecom-api/internal/domain"
	cartrepo "ecom-api/internal/repository/cart"
	orderrepo "ecom-api/internal/repository/order"
)

type Service struct {
	repo    cartRepo
	ledger  ledgerRepo
	orders  orderRepo
	catalog productRepo
}

type cartRepo interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
}

type ledgerRepo interface {
	GetByProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error)
}

type orderRepo interface {
	CreateFromCart(ctx context.Context, userID string, ship orderrepo.ShippingDetails) (*domain.Order, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, ledger ledgerRepo, orders orderrepo.Repository, catalog productRepo) *Service {
	return &Service{repo: repo, ledger: ledger, orders: orders, catalog: catalog}
}

type CheckoutInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

// AddItem validates availability against the current total ledger stock. The
// quantity already sitting in this cart is deliberately not counted; checkout
// performs the authoritative re-check under lock.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	rec, err := s.ledger.GetByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, err
	}
	if rec.StockCount < quantity {
		return nil, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   rec.StockCount,
		}
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}

// UpdateItem overwrites a line's quantity; a value <= 0 removes the line. No
// stock check happens here, matching add-time laxity.
func (s *Service) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, &domain.ValidationError{Field: "productId", Reason: "required"}
	}
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetItemQuantity(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}

// Checkout validates the shipping fields, then hands the cart to the order
// repository, which re-validates stock and debits the ledger atomically.
func (s *Service) Checkout(ctx context.Context, userID string, in CheckoutInput) (*domain.Order, error) {
	if err := validateShipping(in); err != nil {
		return nil, err
	}
	return s.orders.CreateFromCart(ctx, userID, orderrepo.ShippingDetails{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		Address:  strings.TrimSpace(in.Address),
		Phone:    strings.TrimSpace(in.Phone),
	})
}

func validateShipping(in CheckoutInput) error {
	if strings.TrimSpace(in.FullName) == "" {
		return &domain.ValidationError{Field: "fullName", Reason: "required"}
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return &domain.ValidationError{Field: "email", Reason: "required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &domain.ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if strings.TrimSpace(in.Address) == "" {
		return &domain.ValidationError{Field: "address", Reason: "required"}
	}
	if strings.TrimSpace(in.Phone) == "" {
		return &domain.ValidationError{Field: "phone", Reason: "required"}
	}
	return nil
}
