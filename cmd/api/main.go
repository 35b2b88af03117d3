package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/application/ports"
	"github.com/jhoicas/inventory-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/export"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/metrics"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/inventory-dashboard/internal/interfaces/http"
	"github.com/jhoicas/inventory-dashboard/pkg/config"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

// storage repositorios y tx runner del driver elegido.
type storage struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	txRunner  ports.TxRunner
	ping      func(ctx context.Context) error
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Caché de reportes: Redis si REDIS_ADDR está definido, si no no-op
	var reportCache ports.ReportCache = cache.NewNoopCache()
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisCache(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})).WithNamespace(cfg.Redis.Prefix)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, reportes sin caché")
			_ = rc.Close()
		} else {
			reportCache = rc
			defer func() { _ = rc.Close() }()
		}
		cancel()
	}

	metrics.Init()

	appLog := log.Component("usecase")
	productUC := usecase.NewProductUseCase(store.txRunner, store.products, reportCache, appLog)
	purchaseUC := usecase.NewPurchaseUseCase(store.txRunner, store.products, store.purchases, reportCache, appLog)
	saleUC := usecase.NewSaleUseCase(store.txRunner, store.products, store.sales, reportCache, appLog)
	stockUC := inventory.NewStockUseCase(store.products, store.purchases, store.sales, appLog)
	reportUC := analytics.NewReportUseCase(store.products, store.purchases, store.sales,
		reportCache, cfg.Report.CacheTTL(), appLog)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Inventory Dashboard API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		body := fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver}
		if err := store.ping(c.UserContext()); err != nil {
			status = fiber.StatusServiceUnavailable
			body["status"] = "degraded"
			body["error"] = err.Error()
		}
		return c.Status(status).JSON(body)
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		PurchaseUC: purchaseUC,
		SaleUC:     saleUC,
		StockUC:    stockUC,
		ReportUC:   reportUC,
		Renderer:   export.NewRenderer(cfg.Report.Currency),
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

// openStorage abre el driver configurado. En memoria se carga el catálogo demo;
// en PostgreSQL se aplican las migraciones si DB_MIGRATE=true.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		if cfg.DB.Migrate {
			if err := postgres.RunMigrations(cfg.DB); err != nil {
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &storage{
			products:  postgres.NewProductRepository(pool),
			purchases: postgres.NewPurchaseRepository(pool),
			sales:     postgres.NewSaleRepository(pool),
			txRunner:  postgres.NewTxRunner(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil
	}

	mem := memory.NewStore()
	res, err := seed.Demo(ctx, mem.Products(), mem.Purchases(), mem.Sales())
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("products", res.Products).
		Int("purchases", res.Purchases).
		Int("sales", res.Sales).
		Msg("almacén en memoria con datos de demostración")
	return &storage{
		products:  mem.Products(),
		purchases: mem.Purchases(),
		sales:     mem.Sales(),
		txRunner:  memory.NewTxRunner(mem),
		ping:      func(context.Context) error { return nil },
		close:     func() {},
	}, nil
}
