// migrate aplica las migraciones embebidas sobre la base configurada y muestra la versión resultante.
//
// Uso: go run ./cmd/migrate
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	version, err := postgres.MigrationVersion(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Int64("version", version).Msg("migraciones aplicadas")
}
