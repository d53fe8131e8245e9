package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ecom-api/internal/config"
	"ecom-api/internal/db"
	"ecom-api/internal/httpserver"
	cartrepo "ecom-api/internal/repository/cart"
	inventoryrepo "ecom-api/internal/repository/inventory"
	orderrepo "ecom-api/internal/repository/order"
	productrepo "ecom-api/internal/repository/product"
	cartsvc "ecom-api/internal/service/cart"
	catalogsvc "ecom-api/internal/service/catalog"
	inventorysvc "ecom-api/internal/service/inventory"
	ordersvc "ecom-api/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	inventoryRepo := inventoryrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	catalogService := catalogsvc.New(productRepo, inventoryRepo)
	inventoryService := inventorysvc.New(inventoryRepo)
	cartService := cartsvc.New(cartRepo, inventoryRepo, orderRepo, productRepo)
	orderService := ordersvc.New(orderRepo)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:   catalogService,
		InventorySvc: inventoryService,
		CartSvc:      cartService,
		OrderSvc:     orderService,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
