// seed carga un catálogo de demostración (productos, bodegas y stock inicial) en PostgreSQL
// a partir de un CSV separado por ';' y emite un token de administrador para probar el API.
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto usa cmd/seed/catalog_sample.csv. Acepta archivos UTF-8 o ISO-8859-1 (exportados desde Excel).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/jwt"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

const seedActor = "seed"

func main() {
	csvPath := filepath.Join(findModuleRoot(), "cmd", "seed", "catalog_sample.csv")
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name}).Component("seed")

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	s := &seeder{
		categories:    usecase.NewCategoryUseCase(postgres.NewCategoryRepository(pool), productRepo),
		brands:        usecase.NewBrandUseCase(postgres.NewBrandRepository(pool), productRepo),
		products:      usecase.NewProductUseCase(productRepo),
		warehouses:    usecase.NewWarehouseUseCase(warehouseRepo),
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		movements: inventory.NewRegisterMovementUseCase(
			inventory.NewLedgerEngine(postgres.NewTxRunner(pool), inventory.NewLocalKeyLocker(), inventory.WithLogger(log)),
			productRepo, warehouseRepo, nil, invdomain.DefaultThresholds(), log,
		),
	}

	stats, err := s.load(ctx, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar catálogo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cargado %s: %d productos, %d bodegas, %d categorías, %d marcas, %d entradas de stock\n",
		csvPath, stats.products, stats.warehouses, stats.categories, stats.brands, stats.stockIns)

	token, err := jwt.Generate(cfg.JWT.Secret, "seed-admin", jwt.RoleAdmin, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Token Admin (%d min):\n%s\n", cfg.JWT.Expiration, token)
}

type seedStats struct {
	products   int
	warehouses int
	categories int
	brands     int
	stockIns   int
}

type seeder struct {
	categories    *usecase.CategoryUseCase
	brands        *usecase.BrandUseCase
	products      *usecase.ProductUseCase
	warehouses    *usecase.WarehouseUseCase
	movements     *inventory.RegisterMovementUseCase
	productRepo   productFinder
	warehouseRepo warehouseFinder
}

// load es idempotente para productos y bodegas; las entradas de stock se suman en cada ejecución.
func (s *seeder) load(ctx context.Context, rows []catalogRow) (seedStats, error) {
	var stats seedStats
	for _, r := range rows {
		productID, created, err := s.ensureProduct(ctx, r)
		if err != nil {
			return stats, fmt.Errorf("producto %s: %w", r.SKU, err)
		}
		if created {
			stats.products++
		}
		if created, err = s.ensureCategory(ctx, r.Category); err != nil {
			return stats, fmt.Errorf("categoría %s: %w", r.Category, err)
		} else if created {
			stats.categories++
		}
		if created, err = s.ensureBrand(ctx, r.Brand); err != nil {
			return stats, fmt.Errorf("marca %s: %w", r.Brand, err)
		} else if created {
			stats.brands++
		}
		warehouseID, created, err := s.ensureWarehouse(ctx, r.Warehouse)
		if err != nil {
			return stats, fmt.Errorf("bodega %s: %w", r.Warehouse, err)
		}
		if created {
			stats.warehouses++
		}
		if r.Quantity == 0 {
			continue
		}
		_, err = s.movements.StockIn(ctx, seedActor, dto.StockInRequest{
			ProductID:  productID,
			Warehouse:  warehouseID,
			Quantity:   r.Quantity,
			Supplier:   r.Supplier,
			Invoice:    "SEED",
			Batch:      r.Batch,
			ExpiryDate: r.ExpiryDate,
			Remarks:    "carga inicial",
		})
		if err != nil {
			return stats, fmt.Errorf("entrada %s/%s: %w", r.SKU, r.Warehouse, err)
		}
		stats.stockIns++
	}
	return stats, nil
}

func (s *seeder) ensureProduct(ctx context.Context, r catalogRow) (string, bool, error) {
	p, err := s.products.Create(ctx, r.product())
	if err == nil {
		return p.ID, true, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return "", false, err
	}
	existing, err := s.productRepo.GetBySKU(ctx, r.SKU)
	if err != nil {
		return "", false, err
	}
	if existing == nil {
		return "", false, domain.ErrNotFound
	}
	return existing.ID, false, nil
}

// ensureCategory y ensureBrand ignoran nombres vacíos y los ya registrados.
func (s *seeder) ensureCategory(ctx context.Context, name string) (bool, error) {
	if s.categories == nil || strings.TrimSpace(name) == "" {
		return false, nil
	}
	_, err := s.categories.Create(ctx, dto.CategoryRequest{Name: name})
	return existsOK(err)
}

func (s *seeder) ensureBrand(ctx context.Context, name string) (bool, error) {
	if s.brands == nil || strings.TrimSpace(name) == "" {
		return false, nil
	}
	_, err := s.brands.Create(ctx, dto.CreateBrandRequest{Name: name})
	return existsOK(err)
}

func existsOK(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrDuplicate):
		return false, nil
	default:
		return false, err
	}
}

func (s *seeder) ensureWarehouse(ctx context.Context, name string) (string, bool, error) {
	w, err := s.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: name})
	if err == nil {
		return w.ID, true, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return "", false, err
	}
	existing, err := s.warehouseRepo.GetByName(ctx, name)
	if err != nil {
		return "", false, err
	}
	if existing == nil {
		return "", false, domain.ErrNotFound
	}
	return existing.ID, false, nil
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
