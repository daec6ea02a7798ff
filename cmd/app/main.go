package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/willowbyte/gardenbloom/internal/admin"
	"github.com/willowbyte/gardenbloom/internal/bootstrap"
	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/challenge"
	"github.com/willowbyte/gardenbloom/internal/concurrency"
	"github.com/willowbyte/gardenbloom/internal/config"
	"github.com/willowbyte/gardenbloom/internal/economy"
	"github.com/willowbyte/gardenbloom/internal/engine"
	"github.com/willowbyte/gardenbloom/internal/event"
	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/multiplayer"
	"github.com/willowbyte/gardenbloom/internal/scheduler"
	"github.com/willowbyte/gardenbloom/internal/server"
	"github.com/willowbyte/gardenbloom/internal/session"
	"github.com/willowbyte/gardenbloom/internal/slot"
	"github.com/willowbyte/gardenbloom/internal/sse"
	"github.com/willowbyte/gardenbloom/internal/store"
	"github.com/willowbyte/gardenbloom/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Application exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}

	// Item catalog: YAML override or built-in defaults
	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		if cat, err = catalog.LoadFile(cfg.CatalogPath); err != nil {
			return err
		}
		slog.Info("Catalog loaded", "path", cfg.CatalogPath)
	} else {
		cat = catalog.Default()
	}

	// Event system
	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	// SSE hub for browser event streams
	hub := sse.NewHub()

	if err := bootstrap.RegisterEventHandlers(eventBus, hub); err != nil {
		return err
	}

	// Game services
	eng := engine.New(cat)
	econ := economy.NewService(cat, economy.WithRestockInterval(cfg.RestockInterval))
	chal := challenge.NewService()
	locks := concurrency.NewLockManager()

	slots := slot.NewManager(st, locks, cat, eng, econ, chal, publisher, slot.Config{
		RecentSaveSkip:  cfg.RecentSaveSkip,
		AdminChangeSkip: cfg.AdminChangeSkip,
		Session: session.Config{
			TickInterval:  cfg.TickInterval,
			AutosaveEvery: cfg.AutosaveEvery,
		},
	})

	// Multiplayer sync client
	var syncClient *multiplayer.Client
	if cfg.SyncURL != "" {
		syncClient = multiplayer.NewClient(cfg.SyncURL, cfg.SyncToken, publisher, multiplayer.Callbacks{
			OnForcedLogout: func(ctx context.Context) {
				logger.FromContext(ctx).Warn("Forced logout from sync server, multiplayer disabled until re-login")
			},
		})
		syncClient.Start(ctx)

		// Push a fresh snapshot to friends after every foreground save.
		eventBus.Subscribe(event.SlotSaved, func(ctx context.Context, _ event.Event) error {
			if sess := slots.Active(); sess != nil {
				syncClient.NotifySaved(ctx, sess.Snapshot())
			}
			return nil
		})
	} else {
		slog.Info("SYNC_URL not set, running in single-player mode")
	}

	// Background worker pool and scheduler for inactive slot ticking
	pool := worker.NewPool(2, 16)
	pool.Start()
	sched := scheduler.New(pool)
	slot.NewBackgroundJob(slots).Register(sched, cfg.BackgroundInterval)

	// Admin dispatcher
	dispatcher := admin.NewDispatcher(slots, st, econ)

	srv := server.NewServer(cfg.Port, cfg.APIKey, server.Deps{
		Store:    st,
		Catalog:  cat,
		Slots:    slots,
		Sync:     syncClient,
		Admin:    dispatcher,
		EventHub: hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		Slots:      slots,
		Sync:       syncClient,
		Scheduler:  sched,
		WorkerPool: pool,
		EventHub:   hub,
		Store:      st,
	})

	return nil
}
