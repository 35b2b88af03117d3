// seed carga el catálogo de demostración (3 productos, 3 compras, 2 ventas) en PostgreSQL.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*). Aplica las
// migraciones antes de insertar si DB_MIGRATE=true. Es idempotente.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/seed"
	"github.com/jhoicas/inventory-dashboard/pkg/config"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	res, err := seed.Demo(ctx,
		postgres.NewProductRepository(pool),
		postgres.NewPurchaseRepository(pool),
		postgres.NewSaleRepository(pool),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar datos de demostración")
	}
	log.Info().
		Int("products", res.Products).
		Int("purchases", res.Purchases).
		Int("sales", res.Sales).
		Msg("datos de demostración cargados")
}
