package sse

import (
	"context"
	"log/slog"

	"github.com/willowbyte/gardenbloom/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// forwarded maps bus event types to the SSE event type browsers see.
var forwarded = map[event.Type]string{
	event.GardenHarvested:     EventTypeHarvested,
	event.WeatherChanged:      EventTypeWeatherChanged,
	event.SeasonChanged:       EventTypeSeasonChanged,
	event.ChallengeCompleted:  EventTypeChallengeCompleted,
	event.AchievementUnlocked: EventTypeAchievement,
	event.SyncChatMessage:     EventTypeChat,
	event.SyncAnnouncement:    EventTypeAnnouncement,
}

// Subscribe registers handlers for all forwarded event types
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(forwarded))
	for busType := range forwarded {
		s.bus.Subscribe(busType, s.handleEvent)
		types = append(types, string(busType))
	}

	slog.Info("SSE subscriber registered for event types", "types", types)
}

// handleEvent forwards one bus event to connected browsers. Payloads go
// out as-is; they are the typed V1 structs and marshal cleanly.
func (s *Subscriber) handleEvent(_ context.Context, evt event.Event) error {
	sseType, ok := forwarded[evt.Type]
	if !ok {
		return nil
	}

	s.hub.Broadcast(sseType, evt.Payload)

	slog.Debug(LogMsgEventBroadcast, "event_type", sseType)
	return nil
}
