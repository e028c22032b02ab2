package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/redislock"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// stores repositorios de la app para el driver configurado.
type stores struct {
	tx             inventory.TxRunner
	quantities     repository.QuantityStore
	movements      repository.MovementLog
	products       repository.ProductRepository
	warehouses     repository.WarehouseRepository
	suppliers      repository.SupplierRepository
	purchaseOrders repository.PurchaseOrderRepository
	notifications  repository.NotificationRepository
	categories     repository.CategoryRepository
	brands         repository.BrandRepository
	users          repository.UserRepository
	close          func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &stores{
			tx:             postgres.NewTxRunner(pool),
			quantities:     postgres.NewQuantityStore(pool),
			movements:      postgres.NewMovementLog(pool),
			products:       postgres.NewProductRepository(pool),
			warehouses:     postgres.NewWarehouseRepository(pool),
			suppliers:      postgres.NewSupplierRepository(pool),
			purchaseOrders: postgres.NewPurchaseOrderRepository(pool),
			notifications:  postgres.NewNotificationRepository(pool),
			categories:     postgres.NewCategoryRepository(pool),
			brands:         postgres.NewBrandRepository(pool),
			users:          postgres.NewUserRepository(pool),
			close:          pool.Close,
		}, nil
	default:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		db := memory.NewDB()
		return &stores{
			tx:             memory.NewTxRunner(db),
			quantities:     memory.NewQuantityStore(db),
			movements:      memory.NewMovementLog(db),
			products:       memory.NewProductRepository(db),
			warehouses:     memory.NewWarehouseRepository(db),
			suppliers:      memory.NewSupplierRepository(db),
			purchaseOrders: memory.NewPurchaseOrderRepository(db),
			notifications:  memory.NewNotificationRepository(db),
			categories:     memory.NewCategoryRepository(db),
			brands:         memory.NewBrandRepository(db),
			users:          memory.NewUserRepository(db),
			close:          func() {},
		}, nil
	}
}

// openLocker devuelve el KeyLocker configurado y su función de cierre.
func openLocker(ctx context.Context, cfg *config.Config, log *logger.Logger) (inventory.KeyLocker, func(), error) {
	if cfg.Lock.Backend != config.LockRedis {
		return inventory.NewLocalKeyLocker(), func() {}, nil
	}
	client, err := redislock.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	return redislock.New(client, cfg.Lock.TTL, log), func() { _ = client.Close() }, nil
}
