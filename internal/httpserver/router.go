package httpserver

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"ecom-api/internal/domain"
	cartsvc "ecom-api/internal/service/cart"
	catalogsvc "ecom-api/internal/service/catalog"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the handlers call into.
type Deps struct {
	CatalogSvc   catalogService
	InventorySvc inventoryService
	CartSvc      cartService
	OrderSvc     orderService
}

type catalogService interface {
	List(ctx context.Context, in catalogsvc.ListInput) ([]domain.Product, error)
	GetDetail(ctx context.Context, id string) (*domain.ProductDetail, error)
	Create(ctx context.Context, in catalogsvc.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalogsvc.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Purchase(ctx context.Context, productID string, quantity int) (*domain.InventoryRecord, error)
}

type inventoryService interface {
	List(ctx context.Context) ([]domain.InventoryRecord, error)
	Get(ctx context.Context, id string) (*domain.InventoryRecord, error)
	AddStock(ctx context.Context, id string, quantity int) (*domain.InventoryRecord, error)
	RemoveStock(ctx context.Context, id string, quantity int) (*domain.InventoryRecord, error)
	Set(ctx context.Context, id string, value int) (*domain.InventoryRecord, error)
}

type cartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	Checkout(ctx context.Context, userID string, in cartsvc.CheckoutInput) (*domain.Order, error)
}

type orderService interface {
	List(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error)
}

// buildRouter wires routes for the API. Authentication itself lives upstream;
// the gateway forwards the resolved identity in X-User-ID / X-User-Role.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-User-ID", "X-User-Role"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.Use(identityMiddleware())

	products := api.Group("/products")
	products.GET("", listProductsHandler(deps.CatalogSvc))
	products.GET("/:id", getProductHandler(deps.CatalogSvc))
	products.POST("", requireRole(roleAdmin, roleVendor), createProductHandler(deps.CatalogSvc))
	products.PUT("/:id", requireRole(roleAdmin, roleVendor), updateProductHandler(deps.CatalogSvc))
	products.DELETE("/:id", requireRole(roleAdmin, roleVendor), deleteProductHandler(deps.CatalogSvc))
	products.POST("/:id/purchase", requireUser(), purchaseHandler(deps.CatalogSvc))

	inv := api.Group("/inventory", requireRole(roleAdmin, roleVendor))
	inv.GET("", listInventoryHandler(deps.InventorySvc))
	inv.GET("/:id", getInventoryHandler(deps.InventorySvc))
	inv.PUT("/:id", setInventoryHandler(deps.InventorySvc))
	inv.POST("/:id/add_stock", addStockHandler(deps.InventorySvc))
	inv.POST("/:id/remove_stock", removeStockHandler(deps.InventorySvc))

	cart := api.Group("/cart", requireUser())
	cart.GET("", getCartHandler(deps.CartSvc))
	cart.POST("/add_item", addCartItemHandler(deps.CartSvc))
	cart.POST("/update_item", updateCartItemHandler(deps.CartSvc))
	cart.POST("/checkout", checkoutHandler(deps.CartSvc))

	orders := api.Group("/orders", requireUser())
	orders.GET("", listOrdersHandler(deps.OrderSvc))
	orders.GET("/:id", getOrderHandler(deps.OrderSvc))
	orders.POST("/:id/cancel", cancelOrderHandler(deps.OrderSvc))
	orders.POST("/:id/status", requireRole(roleAdmin), updateOrderStatusHandler(deps.OrderSvc))

	return router
}

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"

	roleAdmin  = "admin"
	roleVendor = "vendor"
)

func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader("X-User-ID")); id != "" {
			c.Set(userIDKey, id)
		}
		if role := strings.TrimSpace(c.GetHeader("X-User-Role")); role != "" {
			c.Set(userRoleKey, role)
		}
		c.Next()
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(userIDKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(userIDKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		role := c.GetString(userRoleKey)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}
