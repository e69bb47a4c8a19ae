// @title        Almacén API
// @version      1.0
// @description  Ledger de entradas y salidas de almacén: stock, historial, reportes y usuarios.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jhoicas/almacen-api/docs"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/export"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/live"
	"github.com/jhoicas/almacen-api/internal/application/reporting"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// stores adaptadores del Entity Store elegidos por STORE_DRIVER.
type stores struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	workers   repository.WorkerRepository
	users     repository.UserRepository
	identity  auth.IdentityProvider
	changes   repository.ChangeNotifier
	txRunner  ledger.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		AppName: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Bool("ledger_transactional", cfg.Ledger.Transactional).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store")
	}
	defer st.close()

	// Snapshots en vivo para el tablero
	productFeed := live.NewFeed[entity.Product]()
	movementFeed := live.NewFeed[entity.Movement]()
	productChanges, cancelProducts := st.changes.Watch(repository.CollectionProducts)
	defer cancelProducts()
	movementChanges, cancelMovements := st.changes.Watch(repository.CollectionMovements)
	defer cancelMovements()
	go live.Sync(ctx, repository.CollectionProducts, productFeed,
		reporting.LoadProducts(st.products), productChanges, log.Component("live"))
	go live.Sync(ctx, repository.CollectionMovements, movementFeed,
		reporting.LoadWindow(st.movements, time.Now), movementChanges, log.Component("live"))

	var ledgerOpts []ledger.Option
	if cfg.Ledger.Transactional {
		ledgerOpts = append(ledgerOpts, ledger.WithTxRunner(st.txRunner))
	}
	ledgerUC := ledger.NewRecordMovementUseCase(st.products, st.movements, log.Component("ledger"), ledgerOpts...)
	historyUC := history.NewHistoryUseCase(st.movements, cfg.History.ClearConcurrency, log.Component("history"))
	exportUC := export.NewExportUseCase(st.movements)
	productUC := usecase.NewProductUseCase(st.products, inventory.NewCategorySet(), log.Component("products"))
	workerUC := usecase.NewWorkerUseCase(st.workers)
	userUC := usecase.NewUserUseCase(st.users, st.identity, log.Component("users"))
	dashboardUC := reporting.NewDashboardUseCase(productFeed, movementFeed, st.products, st.movements,
		infrapdf.NewMarotoReportGenerator(cfg.App.Name))
	authUC := auth.NewAuthUseCase(st.identity, st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	if cfg.App.AdminEmail != "" {
		created, err := userUC.EnsureAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear admin inicial")
		}
		if created {
			log.Info().Str("email", cfg.App.AdminEmail).Msg("admin inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		WorkerUC:    workerUC,
		UserUC:      userUC,
		Ledger:      ledgerUC,
		History:     historyUC,
		Export:      exportUC,
		DashboardUC: dashboardUC,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		s := memstore.NewStore()
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		return &stores{
			products:  memstore.NewProductRepository(s),
			movements: memstore.NewMovementRepository(s),
			workers:   memstore.NewWorkerRepository(s),
			users:     memstore.NewUserRepository(s),
			identity:  memstore.NewIdentity(0),
			changes:   s,
			txRunner:  memstore.NewTxRunner(s),
			close:     func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	notifier := postgres.NewNotifier(pool, log.Component("notifier"))
	go notifier.Run(ctx)

	return postgresStores(pool, notifier), nil
}

func postgresStores(pool *pgxpool.Pool, notifier *postgres.Notifier) *stores {
	indexes := postgres.NewIndexRegistry()
	return &stores{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewMovementRepository(pool, indexes),
		workers:   postgres.NewWorkerRepository(pool),
		users:     postgres.NewUserRepository(pool),
		identity:  postgres.NewIdentityRepository(pool),
		changes:   notifier,
		txRunner:  postgres.NewTxRunner(pool, indexes),
		close:     pool.Close,
	}
}
