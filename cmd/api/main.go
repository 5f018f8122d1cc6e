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

	"github.com/jhoicas/sauna-pos/internal/application/account"
	"github.com/jhoicas/sauna-pos/internal/application/auth"
	"github.com/jhoicas/sauna-pos/internal/application/cash"
	"github.com/jhoicas/sauna-pos/internal/application/expense"
	"github.com/jhoicas/sauna-pos/internal/application/inventory"
	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/cache"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/memory"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/sauna-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/sauna-pos/internal/interfaces/http"
	"github.com/jhoicas/sauna-pos/pkg/config"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// txStore agrupa escrituras transaccionales y lecturas sobre una foto consistente.
type txStore interface {
	ports.TxRunner
	ports.SnapshotReader
}

// backend es lo que el resto de la aplicación necesita del almacenamiento elegido.
type backend struct {
	tx     txStore
	repos  repository.Repos
	promos ports.PromotionCatalog
	close  func()
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	promos := store.promos
	if cfg.Redis.Addr != "" {
		rdb := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()
		promos = cache.NewPromotionCache(rdb, promos, time.Duration(cfg.Redis.PromotionTTL)*time.Second, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de promociones en Redis")
	}

	var publisher ports.StockAlertPublisher = messaging.NopPublisher{}
	if cfg.AMQP.URL != "" {
		amqpPub, err := messaging.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer amqpPub.Close()
		publisher = amqpPub
		log.Info().Str("exchange", cfg.AMQP.Exchange).Str("queue", cfg.AMQP.Queue).Msg("avisos de stock por AMQP")
	}

	alerter := inventory.NewAlerter(publisher, log)
	productUC := inventory.NewProductUseCase(store.tx, store.repos, log)
	movementUC := inventory.NewMovementUseCase(store.tx, store.repos, alerter, log)
	reconcileUC := inventory.NewReconcileUseCase(store.tx, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.repos)
	accountUC := account.NewAccountUseCase(store.tx, store.repos, promos, alerter, log)
	expenseUC := expense.NewExpenseUseCase(store.tx, store.repos, log)
	cashUC := cash.NewCashUseCase(store.tx, store.repos, infrapdf.NewCashSummaryPDF(cfg.App.Name), cfg.Cash.CashMethodID, log)
	authUC := auth.NewAuthUseCase(store.repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	sched := scheduler.New(reconcileUC, log)
	if err := sched.Start(cfg.Scheduler.ReconcileCron); err != nil {
		log.Fatal().Err(err).Msg("programar conciliación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Sauna POS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		AccountUC:     accountUC,
		ProductUC:     productUC,
		MovementUC:    movementUC,
		ReconcileUC:   reconcileUC,
		Replenishment: replenishmentUC,
		ExpenseUC:     expenseUC,
		CashUC:        cashUC,
		JWTSecret:     cfg.JWT.Secret,
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
	sched.Stop()

	log.Info().Msg("aplicación detenida")
}

// openBackend abre PostgreSQL (aplicando migraciones si corresponde) o el almacén en memoria.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Store.Driver == "memory" {
		s, err := memory.NewSeeded(cfg.Store.AdminPassword)
		if err != nil {
			return nil, err
		}
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &backend{tx: s, repos: s.Repos(), promos: s, close: func() {}}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &backend{
		tx:     postgres.NewTxRunner(pool),
		repos:  postgres.NewRepos(pool),
		promos: postgres.NewPromotionRepository(pool),
		close:  pool.Close,
	}, nil
}
