package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecom-api/internal/domain"
	cartsvc "ecom-api/internal/service/cart"
	catalogsvc "ecom-api/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	products    []domain.Product
	detail      *domain.ProductDetail
	rec         *domain.InventoryRecord
	err         error
	purchaseQty int
}

func (f *fakeCatalog) List(ctx context.Context, in catalogsvc.ListInput) ([]domain.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) GetDetail(ctx context.Context, id string) (*domain.ProductDetail, error) {
	return f.detail, f.err
}

func (f *fakeCatalog) Create(ctx context.Context, in catalogsvc.ProductInput) (*domain.Product, error) {
	return &domain.Product{ID: "p1", Name: in.Name, Price: in.Price}, f.err
}

func (f *fakeCatalog) Update(ctx context.Context, id string, in catalogsvc.ProductInput) (*domain.Product, error) {
	return &domain.Product{ID: id, Name: in.Name, Price: in.Price}, f.err
}

func (f *fakeCatalog) Delete(ctx context.Context, id string) error {
	return f.err
}

func (f *fakeCatalog) Purchase(ctx context.Context, productID string, quantity int) (*domain.InventoryRecord, error) {
	f.purchaseQty = quantity
	return f.rec, f.err
}

type fakeInventory struct {
	rec *domain.InventoryRecord
	err error
}

func (f *fakeInventory) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	if f.rec == nil {
		return nil, f.err
	}
	return []domain.InventoryRecord{*f.rec}, f.err
}

func (f *fakeInventory) Get(ctx context.Context, id string) (*domain.InventoryRecord, error) {
	return f.rec, f.err
}

func (f *fakeInventory) AddStock(ctx context.Context, id string, quantity int) (*domain.InventoryRecord, error) {
	return f.rec, f.err
}

func (f *fakeInventory) RemoveStock(ctx context.Context, id string, quantity int) (*domain.InventoryRecord, error) {
	return f.rec, f.err
}

func (f *fakeInventory) Set(ctx context.Context, id string, value int) (*domain.InventoryRecord, error) {
	return f.rec, f.err
}

type fakeCart struct {
	cart  *domain.Cart
	order *domain.Order
	err   error
}

func (f *fakeCart) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCart) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCart) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCart) Checkout(ctx context.Context, userID string, in cartsvc.CheckoutInput) (*domain.Order, error) {
	return f.order, f.err
}

type fakeOrders struct {
	order *domain.Order
	err   error
}

func (f *fakeOrders) List(ctx context.Context, userID string) ([]domain.Order, error) {
	if f.order == nil {
		return nil, f.err
	}
	return []domain.Order{*f.order}, f.err
}

func (f *fakeOrders) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return f.order, f.err
}

func (f *fakeOrders) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return f.order, f.err
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	return f.order, f.err
}

func newTestRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	if deps.CatalogSvc == nil {
		deps.CatalogSvc = &fakeCatalog{}
	}
	if deps.InventorySvc == nil {
		deps.InventorySvc = &fakeInventory{rec: &domain.InventoryRecord{ID: "inv1"}}
	}
	if deps.CartSvc == nil {
		deps.CartSvc = &fakeCart{cart: &domain.Cart{ID: "cart-1"}}
	}
	if deps.OrderSvc == nil {
		deps.OrderSvc = &fakeOrders{}
	}
	return buildRouter(logger, nil, deps)
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func asCustomer(id string) map[string]string {
	return map[string]string{"X-User-ID": id, "X-User-Role": "customer"}
}

func TestAuth_RequireUser(t *testing.T) {
	router := newTestRouter(Deps{})

	rec := doRequest(t, router, http.MethodGet, "/api/cart", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/cart", "", asCustomer("u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with identity, got %d: %s", rec.Code, rec.Body)
	}
}

func TestAuth_RequireRole(t *testing.T) {
	router := newTestRouter(Deps{})

	rec := doRequest(t, router, http.MethodGet, "/api/inventory", "", asCustomer("u1"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/inventory", "", map[string]string{
		"X-User-ID": "v1", "X-User-Role": "vendor",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for vendor, got %d: %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/inventory", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}
}

func TestAuth_OrderStatusIsAdminOnly(t *testing.T) {
	router := newTestRouter(Deps{OrderSvc: &fakeOrders{order: &domain.Order{ID: "o1", Status: domain.StatusProcessing}}})

	body := `{"status":"processing"}`
	rec := doRequest(t, router, http.MethodPost, "/api/orders/o1/status", body, map[string]string{
		"X-User-ID": "v1", "X-User-Role": "vendor",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/orders/o1/status", body, map[string]string{
		"X-User-ID": "a1", "X-User-Role": "admin",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", rec.Code, rec.Body)
	}
}

func TestPurchaseHandler(t *testing.T) {
	catalog := &fakeCatalog{rec: &domain.InventoryRecord{ID: "inv1", ProductID: "p1", StockCount: 4}}
	router := newTestRouter(Deps{CatalogSvc: catalog})

	rec := doRequest(t, router, http.MethodPost, "/api/products/p1/purchase", `{"quantity":2}`, asCustomer("u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if catalog.purchaseQty != 2 {
		t.Fatalf("expected quantity 2 forwarded, got %d", catalog.purchaseQty)
	}
	var resp struct {
		Status         string `json:"status"`
		RemainingStock int    `json:"remainingStock"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || resp.RemainingStock != 4 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPurchaseHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}, http.StatusBadRequest},
		{"insufficient", &domain.InsufficientStockError{ProductID: "p1", Requested: 5, Available: 2}, http.StatusBadRequest},
		{"out of stock", domain.ErrOutOfStock, http.StatusBadRequest},
		{"unknown product", domain.ErrNotFound, http.StatusNotFound},
		{"missing ledger row", domain.ErrInventoryNotFound, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(Deps{CatalogSvc: &fakeCatalog{err: tc.err}})
			rec := doRequest(t, router, http.MethodPost, "/api/products/p1/purchase", `{"quantity":1}`, asCustomer("u1"))
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body)
			}
		})
	}
}

func TestCheckoutHandler(t *testing.T) {
	order := &domain.Order{ID: "o1", Status: domain.StatusPending, Total: decimal.RequireFromString("13.00")}
	router := newTestRouter(Deps{CartSvc: &fakeCart{order: order}})

	body := `{"fullName":"Ada Lovelace","email":"ada@example.com","address":"12 Analytical Way","phone":"+1 555 0100"}`
	rec := doRequest(t, router, http.MethodPost, "/api/cart/checkout", body, asCustomer("u1"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	router = newTestRouter(Deps{CartSvc: &fakeCart{err: domain.ErrEmptyCart}})
	rec = doRequest(t, router, http.MethodPost, "/api/cart/checkout", body, asCustomer("u1"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d: %s", rec.Code, rec.Body)
	}

	router = newTestRouter(Deps{CartSvc: &fakeCart{err: domain.ErrInventoryNotFound}})
	rec = doRequest(t, router, http.MethodPost, "/api/cart/checkout", body, asCustomer("u1"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for missing ledger row, got %d: %s", rec.Code, rec.Body)
	}
}

func TestAddCartItemHandler_BadBody(t *testing.T) {
	router := newTestRouter(Deps{})

	rec := doRequest(t, router, http.MethodPost, "/api/cart/add_item", `{"productId":`, asCustomer("u1"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestListProductsHandler_PriceFilterValidation(t *testing.T) {
	router := newTestRouter(Deps{})

	rec := doRequest(t, router, http.MethodGet, "/api/products?min_price=abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad min_price, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/products?min_price=5.00&max_price=20.00", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(Deps{})

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
