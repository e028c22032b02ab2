package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/notification"
	"github.com/jhoicas/stock-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/pkg/jwt"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName      string
	ProductUC        *usecase.ProductUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	SupplierUC       *usecase.SupplierUseCase
	CategoryUC       *usecase.CategoryUseCase
	BrandUC          *usecase.BrandUseCase
	UserUC           *usecase.UserUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQuery   *inventory.QueryUseCase
	Alerts           *inventory.AlertsUseCase
	PurchaseOrders   *purchasing.UseCase
	Notifications    *notification.UseCase
	JWTSecret        string
	Log              *logger.Logger
	// Metrics nil = sin /metrics.
	Metrics prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	// Rutas protegidas (requieren Bearer Token). Viewer solo lee.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	write := RequireRole(jwt.RoleAdmin, jwt.RoleManager, jwt.RoleStaff)
	manage := RequireRole(jwt.RoleAdmin, jwt.RoleManager)
	admin := RequireRole(jwt.RoleAdmin)

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.InventoryQuery, log)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Get("/movements", inventoryHandler.Movements)
	inv.Post("/stock-in", write, inventoryHandler.StockIn)
	inv.Post("/stock-out", write, inventoryHandler.StockOut)

	alertsHandler := NewAlertsHandler(deps.Alerts, log)
	alerts := api.Group("/alerts")
	alerts.Get("/low-stock", alertsHandler.LowStock)
	alerts.Get("/low-stock/export", alertsHandler.ExportLowStock)
	alerts.Get("/expiry", alertsHandler.Expiry)
	alerts.Get("/expiry/export", alertsHandler.ExportExpiry)
	alerts.Post("/expiry/notify", write, alertsHandler.NotifyExpiry)

	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrders, log)
	pos := api.Group("/purchase-orders")
	pos.Post("/calculate", poHandler.Calculate)
	pos.Post("/", write, poHandler.Create)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.GetByID)
	pos.Post("/:id/complete", write, poHandler.Complete)
	pos.Get("/:id/pdf", poHandler.DownloadPDF)

	productHandler := NewProductHandler(deps.ProductUC, log)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", write, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", manage, productHandler.Delete)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, log)
	warehouses := api.Group("/warehouses")
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/", manage, warehouseHandler.Create)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	supplierHandler := NewSupplierHandler(deps.SupplierUC, log)
	suppliers := api.Group("/suppliers")
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", write, supplierHandler.Create)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", write, categoryHandler.Create)
	categories.Put("/:id", write, categoryHandler.Update)
	categories.Delete("/:id", manage, categoryHandler.Delete)

	brandHandler := NewBrandHandler(deps.BrandUC, log)
	brands := api.Group("/brands")
	brands.Get("/", brandHandler.List)
	brands.Post("/", write, brandHandler.Create)
	brands.Delete("/:id", manage, brandHandler.Delete)

	userHandler := NewUserHandler(deps.UserUC, log)
	users := api.Group("/users", manage)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", admin, userHandler.Create)
	users.Put("/:id", admin, userHandler.Update)
	users.Post("/:id/toggle-status", admin, userHandler.ToggleStatus)
	users.Delete("/:id", admin, userHandler.Delete)

	notificationHandler := NewNotificationHandler(deps.Notifications, log)
	notifications := api.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
}
