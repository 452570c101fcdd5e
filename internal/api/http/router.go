package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/http/handlers"
	"github.com/spec-kit/records-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Invoices       *handlers.InvoicesHandler
	ListItems      *handlers.ListItemsHandler
	Sales          *handlers.SalesHandler
	Purchases      *handlers.PurchasesHandler
	Stocks         *handlers.StocksHandler
	Orders         *handlers.OrdersHandler
	Items          *handlers.ItemsHandler
	Refunds        *handlers.RefundsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The auth middleware guards everything;
// public paths (auth, health, docs) pass through it untouched.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Get("/health", cfg.Auth.Health)

	api := app.Group("/api/v1")

	invoices := api.Group("/invoices")
	invoices.Get("/", cfg.Invoices.List)
	invoices.Get("/:id", cfg.Invoices.Get)
	invoices.Post("/", cfg.Invoices.Create)
	invoices.Put("/:id", cfg.Invoices.Update)
	invoices.Delete("/:id", cfg.Invoices.Delete)

	listItems := api.Group("/list-items")
	listItems.Get("/", cfg.ListItems.List)
	listItems.Get("/:id", cfg.ListItems.Get)
	listItems.Post("/", cfg.ListItems.Create)
	listItems.Put("/:id", cfg.ListItems.Update)
	listItems.Delete("/:id", cfg.ListItems.Delete)

	sales := api.Group("/sales")
	sales.Get("/", cfg.Sales.List)
	sales.Get("/:id", cfg.Sales.Get)
	sales.Post("/", cfg.Sales.Create)
	sales.Post("/list", cfg.Sales.CreateBatch)
	sales.Put("/:id", cfg.Sales.Update)
	sales.Delete("/:id", cfg.Sales.Delete)

	purchases := api.Group("/purchases")
	purchases.Get("/", cfg.Purchases.List)
	purchases.Get("/:id", cfg.Purchases.Get)
	purchases.Post("/", cfg.Purchases.Create)
	purchases.Put("/:id", cfg.Purchases.Update)
	purchases.Delete("/:id", cfg.Purchases.Delete)

	stocks := api.Group("/stocks")
	stocks.Get("/", cfg.Stocks.List)
	stocks.Get("/:clientId", cfg.Stocks.Get)
	stocks.Post("/", cfg.Stocks.Create)
	stocks.Put("/:clientId", cfg.Stocks.Update)
	stocks.Delete("/:clientId", cfg.Stocks.Delete)

	orders := api.Group("/orders")
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Post("/", cfg.Orders.Create)
	orders.Put("/:id", cfg.Orders.Update)
	orders.Delete("/:id", cfg.Orders.Delete)

	items := api.Group("/items")
	items.Get("/", cfg.Items.List)
	items.Get("/:id", cfg.Items.Get)
	items.Post("/", cfg.Items.Create)
	items.Put("/:id", cfg.Items.Update)
	items.Delete("/:id", cfg.Items.Delete)

	refunds := api.Group("/refunds-cancelled")
	refunds.Get("/", cfg.Refunds.List)
	refunds.Get("/:id", cfg.Refunds.Get)
	refunds.Post("/", cfg.Refunds.Create)
	refunds.Put("/:id", cfg.Refunds.Update)
	refunds.Delete("/:id", cfg.Refunds.Delete)
}
