package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/notification"
	"github.com/jhoicas/stock-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/export"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("lock", cfg.Lock.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: todas las rutas /api responderán 401")
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	locker, closeLocker, err := openLocker(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar lock por clave")
	}
	defer closeLocker()

	thresholds := invdomain.Thresholds{
		CriticalRatio: cfg.Ledger.CriticalRatio,
		WarningRatio:  cfg.Ledger.WarningRatio,
		CriticalDays:  cfg.Ledger.CriticalDays,
		WarningDays:   cfg.Ledger.WarningDays,
	}

	opts := []inventory.LedgerOption{inventory.WithLogger(log)}
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, inventory.WithRecorder(metrics.NewLedgerMetrics(registry)))
		gatherer = registry
	}
	engine := inventory.NewLedgerEngine(st.tx, locker, opts...)

	notificationUC := notification.NewUseCase(st.notifications)
	registerMovementUC := inventory.NewRegisterMovementUseCase(engine, st.products, st.warehouses, notificationUC, thresholds, log)
	queryUC := inventory.NewQueryUseCase(st.quantities, st.movements, st.products, st.warehouses, thresholds)
	alertsUC := inventory.NewAlertsUseCase(st.quantities, st.products, st.warehouses, export.New(), notificationUC, thresholds, log)

	// PDF de órdenes de compra
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name, cfg.Ledger.Currency)
	purchasingUC := purchasing.NewUseCase(st.purchaseOrders, st.suppliers, pdfGenerator, decimal.NewFromFloat(cfg.Ledger.TaxRate))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Stock Ledger API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:      cfg.App.Name,
		ProductUC:        usecase.NewProductUseCase(st.products),
		WarehouseUC:      usecase.NewWarehouseUseCase(st.warehouses),
		SupplierUC:       usecase.NewSupplierUseCase(st.suppliers),
		CategoryUC:       usecase.NewCategoryUseCase(st.categories, st.products),
		BrandUC:          usecase.NewBrandUseCase(st.brands, st.products),
		UserUC:           usecase.NewUserUseCase(st.users),
		RegisterMovement: registerMovementUC,
		InventoryQuery:   queryUC,
		Alerts:           alertsUC,
		PurchaseOrders:   purchasingUC,
		Notifications:    notificationUC,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log,
		Metrics:          gatherer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
