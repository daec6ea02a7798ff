package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/willowbyte/gardenbloom/internal/event"
	"github.com/willowbyte/gardenbloom/internal/metrics"
	"github.com/willowbyte/gardenbloom/internal/sse"
)

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (Prometheus counters driven by game events)
// - SSE subscriber (forwards game events to connected browser streams)
func RegisterEventHandlers(eventBus event.Bus, hub *sse.Hub) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(hub, eventBus).Subscribe()
	slog.Info(LogMsgEventStreamSubscribed)

	return nil
}
