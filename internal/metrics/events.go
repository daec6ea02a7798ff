package metrics

import (
	"context"
	"strconv"

	"github.com/willowbyte/gardenbloom/internal/event"
	"github.com/willowbyte/gardenbloom/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types the collector cares about.
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.GardenPlanted,
		event.GardenHarvested,
		event.WeatherChanged,
		event.SeasonChanged,
		event.ShopRestocked,
		event.ChallengeCompleted,
		event.AchievementUnlocked,
		event.SlotActivated,
		event.SlotDeactivated,
		event.SlotSaved,
		event.SlotReset,
		event.SyncChatMessage,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment the event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.GardenPlanted:
		p, err := event.DecodePayload[event.PlantedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		SeedsPlanted.WithLabelValues(p.Seed).Inc()

	case event.GardenHarvested:
		p, err := event.DecodePayload[event.HarvestedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		PlantsHarvested.WithLabelValues(p.Seed).Inc()

	case event.ChallengeCompleted:
		p, err := event.DecodePayload[event.ChallengeCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		ChallengesCompleted.WithLabelValues(p.Period).Inc()

	case event.SlotSaved:
		p, err := event.DecodePayload[event.SlotPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		SlotSaves.WithLabelValues(strconv.Itoa(p.SlotID)).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
