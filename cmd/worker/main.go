package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/bomlabel/pkg/app"
	"github.com/ghuser/bomlabel/pkg/cache"
	"github.com/ghuser/bomlabel/pkg/config"
	"github.com/ghuser/bomlabel/pkg/database"
	"github.com/ghuser/bomlabel/pkg/events"
	"github.com/ghuser/bomlabel/pkg/logger"
	"github.com/ghuser/bomlabel/pkg/storage"
	"github.com/ghuser/bomlabel/pkg/telemetry"
	"github.com/ghuser/bomlabel/pkg/workflows"
	labelServices "github.com/ghuser/bomlabel/services/label/application/services"
	labelWorkflows "github.com/ghuser/bomlabel/services/label/application/workflows"
	labelEvents "github.com/ghuser/bomlabel/services/label/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(pool.DB(), cfg.ServiceName+"-worker", log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	archive, err := storage.NewLabelArchive(ctx, storage.ConfigFromApp(cfg))
	if err != nil {
		log.Error("failed to setup label archive", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	if err := archive.EnsureBucket(ctx); err != nil {
		log.Error("failed to ensure label archive bucket", "bucket", cfg.MinioBucket, "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("label archive ready", "bucket", cfg.MinioBucket)

	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Error("failed to initialize temporal client", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalClient.Close()

	appConfig := &app.Application{
		Config:         cfg,
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		TemporalClient: temporalClient,
		Archive:        archive,
	}

	svcs, err := labelServices.New(appConfig)
	if err != nil {
		log.Error("failed to build label services", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	subCtx, cancelSubs := context.WithCancel(ctx)
	defer cancelSubs()
	if err := registerSubscribers(subCtx, appConfig, svcs); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	w, err := temporalClient.NewWorker(cfg.TemporalTaskQueue)
	if err != nil {
		log.Error("failed to create temporal worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	labelWorkflows.Register(w, &labelWorkflows.Activities{Labels: svcs.Label})
	if err := w.Start(); err != nil {
		log.Error("failed to start temporal worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer w.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelSubs()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
func registerSubscribers(ctx context.Context, a *app.Application, svcs *labelServices.Services) error {
	errCh, err := a.EventBus.Subscribe(ctx, labelEvents.TopicLabelComputed, handleLabelComputed(svcs.Projector))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", labelEvents.TopicLabelComputed,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{labelEvents.TopicLabelComputed})
	return nil
}

// handleLabelComputed archives and caches each computed label.
// Handlers must be idempotent: EventBus retries up to 3x on failure.
func handleLabelComputed(p *labelServices.LabelProjector) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt labelEvents.LabelComputedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode %s: %w", labelEvents.TopicLabelComputed, err)
		}
		return p.Handle(ctx, evt)
	}
}
