package inventory

import (
	"context"
	"errors"
	"testing"

	"ecom-api/internal/domain"
)

type stubLedger struct {
	rec       *domain.InventoryRecord
	err       error
	lastDelta int
	lastValue int
	adjusted  bool
	setCalled bool
}

func (s *stubLedger) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.InventoryRecord{*s.rec}, nil
}

func (s *stubLedger) GetByID(ctx context.Context, id string) (*domain.InventoryRecord, error) {
	return s.rec, s.err
}

func (s *stubLedger) GetByProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	return s.rec, s.err
}

func (s *stubLedger) Adjust(ctx context.Context, id string, delta int) (*domain.InventoryRecord, error) {
	s.adjusted = true
	s.lastDelta = delta
	return s.rec, s.err
}

func (s *stubLedger) AdjustByProduct(ctx context.Context, productID string, delta int) (*domain.InventoryRecord, error) {
	s.adjusted = true
	s.lastDelta = delta
	return s.rec, s.err
}

func (s *stubLedger) SetCount(ctx context.Context, id string, value int) (*domain.InventoryRecord, error) {
	s.setCalled = true
	s.lastValue = value
	return s.rec, s.err
}

func record(stock int) *domain.InventoryRecord {
	return &domain.InventoryRecord{ID: "inv1", ProductID: "p1", StockCount: stock}
}

func TestAddStock(t *testing.T) {
	ledger := &stubLedger{rec: record(8)}
	svc := New(ledger)

	_, err := svc.AddStock(context.Background(), "inv1", 0)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for zero quantity, got %v", err)
	}
	if ledger.adjusted {
		t.Fatalf("ledger must not be touched on validation failure")
	}

	if _, err := svc.AddStock(context.Background(), "inv1", 3); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if ledger.lastDelta != 3 {
		t.Fatalf("expected delta +3, got %d", ledger.lastDelta)
	}
}

func TestRemoveStock(t *testing.T) {
	ledger := &stubLedger{rec: record(8)}
	svc := New(ledger)

	_, err := svc.RemoveStock(context.Background(), "inv1", -2)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for negative quantity, got %v", err)
	}

	if _, err := svc.RemoveStock(context.Background(), "inv1", 3); err != nil {
		t.Fatalf("RemoveStock: %v", err)
	}
	if ledger.lastDelta != -3 {
		t.Fatalf("expected delta -3, got %d", ledger.lastDelta)
	}
}

func TestRemoveStock_PropagatesInsufficient(t *testing.T) {
	ledger := &stubLedger{err: &domain.InsufficientStockError{ProductID: "p1", Requested: 5, Available: 2}}
	svc := New(ledger)

	_, err := svc.RemoveStock(context.Background(), "inv1", 5)
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
}

func TestSet(t *testing.T) {
	ledger := &stubLedger{rec: record(8)}
	svc := New(ledger)

	_, err := svc.Set(context.Background(), "inv1", -1)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for negative value, got %v", err)
	}
	if ledger.setCalled {
		t.Fatalf("ledger must not be touched on validation failure")
	}

	if _, err := svc.Set(context.Background(), "inv1", 0); err != nil {
		t.Fatalf("Set to zero must be legal: %v", err)
	}
	if ledger.lastValue != 0 {
		t.Fatalf("expected value 0 forwarded, got %d", ledger.lastValue)
	}
}
