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

	"github.com/jhoicas/Fulfillment-api/internal/application/acceptance"
	"github.com/jhoicas/Fulfillment-api/internal/application/ledger"
	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/application/posting"
	"github.com/jhoicas/Fulfillment-api/internal/application/task"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/fault"
	infrakafka "github.com/jhoicas/Fulfillment-api/internal/infrastructure/kafka"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Fulfillment-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Fulfillment-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Fulfillment-api/internal/interfaces/http"
	"github.com/jhoicas/Fulfillment-api/pkg/config"
	"github.com/jhoicas/Fulfillment-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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

	// Almacenamiento: PostgreSQL o memoria (desarrollo y demos).
	var (
		txRunner ports.TxRunner
		ping     func(context.Context) error
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		txRunner = memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		ping = pool.Ping
	}

	// Lock por tarea: Redis si está configurado (varias réplicas), si no en proceso.
	var locker ports.Locker = memory.NewLocker()
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = infraredis.NewLocker(rdb)
	}

	// Eventos de dominio: Kafka si hay brokers, si no se descartan.
	var events ports.EventPublisher = ports.NopPublisher{}
	if cfg.Kafka.Enabled() {
		w := infrakafka.NewWriter(cfg.Kafka)
		defer func() {
			if err := w.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar writer de Kafka")
			}
		}()
		events = infrakafka.NewEventPublisher(w)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicando eventos en Kafka")
	}

	loss := fault.NewRandomLoss(cfg.Fulfillment.LossProbability)
	pickList := infrapdf.NewPickListGenerator(cfg.App.Name)

	ledgerUC := ledger.NewUseCase(txRunner, log.Named("ledger"))
	taskUC := task.NewUseCase(txRunner, locker, loss, events, log.Named("task"), cfg.Fulfillment.LockTTL())
	postingUC := posting.NewUseCase(txRunner, events, pickList, log.Named("posting"))
	acceptanceUC := acceptance.NewUseCase(txRunner, log.Named("acceptance"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Fulfillment API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		Ledger:      ledgerUC,
		Tasks:       taskUC,
		Postings:    postingUC,
		Acceptances: acceptanceUC,
		Ping:        ping,
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
