package bootstrap

import (
	"context"
	"log/slog"

	"github.com/willowbyte/gardenbloom/internal/multiplayer"
	"github.com/willowbyte/gardenbloom/internal/scheduler"
	"github.com/willowbyte/gardenbloom/internal/server"
	"github.com/willowbyte/gardenbloom/internal/slot"
	"github.com/willowbyte/gardenbloom/internal/sse"
	"github.com/willowbyte/gardenbloom/internal/store"
	"github.com/willowbyte/gardenbloom/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server     *server.Server
	Slots      *slot.Manager
	Sync       *multiplayer.Client
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	EventHub   *sse.Hub
	Store      *store.Store
}

// GracefulShutdown stops all application components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Background scheduler and worker pool (no more background saves)
// 3. Active slot (final foreground save)
// 4. Sync client and SSE hub
// 5. Database handle
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	// Deactivating the slot performs the final save.
	slog.Info(LogMsgDeactivatingSlot)
	if err := components.Slots.Deactivate(ctx); err != nil {
		slog.Error(LogMsgSlotDeactivateFailed, "error", err)
	}

	if components.Sync != nil {
		components.Sync.Stop()
	}
	if components.EventHub != nil {
		components.EventHub.Stop()
	}

	if err := components.Store.Close(); err != nil {
		slog.Error(LogMsgStoreCloseFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
