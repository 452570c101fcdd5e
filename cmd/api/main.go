package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/records-service/internal/api/http"
	"github.com/spec-kit/records-service/internal/api/http/handlers"
	"github.com/spec-kit/records-service/internal/auth"
	"github.com/spec-kit/records-service/internal/config"
	"github.com/spec-kit/records-service/internal/observability"
	"github.com/spec-kit/records-service/internal/persistence"
	"github.com/spec-kit/records-service/internal/repository"
	"github.com/spec-kit/records-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	listItemRepo := repository.NewListItemRepository(pool)
	saleRepo := repository.NewSaleRepository(pool)
	purchaseRepo := repository.NewPurchaseRepository(pool)
	stockRepo := repository.NewStockRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	itemRepo := repository.NewItemRepository(pool)
	refundRepo := repository.NewRefundRepository(pool)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	policy := auth.DefaultPolicy()
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, policy, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Invoices:       handlers.NewInvoicesHandler(invoiceRepo),
		ListItems:      handlers.NewListItemsHandler(listItemRepo),
		Sales:          handlers.NewSalesHandler(saleRepo),
		Purchases:      handlers.NewPurchasesHandler(purchaseRepo),
		Stocks:         handlers.NewStocksHandler(stockRepo),
		Orders:         handlers.NewOrdersHandler(orderRepo),
		Items:          handlers.NewItemsHandler(itemRepo),
		Refunds:        handlers.NewRefundsHandler(refundRepo),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
