package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Type represents the type of an event
type Type string

// Common event types
const (
	GardenPlanted     Type = "garden.planted"
	GardenWatered     Type = "garden.watered"
	GardenFertilized  Type = "garden.fertilized"
	GardenHarvested   Type = "garden.harvested"
	GardenExpanded    Type = "garden.expanded"
	GardenStormDamage Type = "garden.storm_damage"

	WeatherChanged Type = "weather.changed"
	SeasonChanged  Type = "season.changed"
	ShopRestocked  Type = "shop.restocked"

	ChallengeCompleted  Type = "challenge.completed"
	ChallengeIssued     Type = "challenge.issued"
	AchievementUnlocked Type = "achievement.unlocked"

	SlotActivated   Type = "slot.activated"
	SlotDeactivated Type = "slot.deactivated"
	SlotSaved       Type = "slot.saved"
	SlotReset       Type = "slot.reset"

	SyncConnected    Type = "sync.connected"
	SyncDisconnected Type = "sync.disconnected"
	SyncChatMessage  Type = "sync.chat_message"
	SyncAnnouncement Type = "sync.announcement"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads

// HarvestedPayloadV1 carries the proceeds of one harvest.
type HarvestedPayloadV1 struct {
	SlotID    int    `json:"slot_id"`
	Seed      string `json:"seed"`
	Rarity    string `json:"rarity"`
	Stage     int    `json:"stage"`
	Value     int    `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

// PlantedPayloadV1 carries a successful planting.
type PlantedPayloadV1 struct {
	SlotID    int    `json:"slot_id"`
	Seed      string `json:"seed"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Timestamp int64  `json:"timestamp"`
}

// ChallengeCompletedPayloadV1 carries a finished challenge.
type ChallengeCompletedPayloadV1 struct {
	SlotID      int    `json:"slot_id"`
	Period      string `json:"period"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
	Timestamp   int64  `json:"timestamp"`
}

// AchievementPayloadV1 carries a newly unlocked achievement.
type AchievementPayloadV1 struct {
	SlotID    int    `json:"slot_id"`
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

// WeatherPayloadV1 carries a weather transition.
type WeatherPayloadV1 struct {
	SlotID    int            `json:"slot_id"`
	Weather   domain.Weather `json:"weather"`
	Timestamp int64          `json:"timestamp"`
}

// SeasonPayloadV1 carries a season rollover.
type SeasonPayloadV1 struct {
	SlotID    int           `json:"slot_id"`
	Season    domain.Season `json:"season"`
	Day       int           `json:"day"`
	Timestamp int64         `json:"timestamp"`
}

// SlotPayloadV1 carries save-slot lifecycle transitions.
type SlotPayloadV1 struct {
	SlotID    int   `json:"slot_id"`
	Timestamp int64 `json:"timestamp"`
}

// ChatPayloadV1 carries an inbound chat message.
type ChatPayloadV1 struct {
	Message domain.ChatMessage `json:"message"`
}

// Type-safe event constructors

// NewHarvestedEvent creates a harvest event.
func NewHarvestedEvent(slotID int, seed domain.PlantType, stage, value int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GardenHarvested,
		Payload: HarvestedPayloadV1{
			SlotID:    slotID,
			Seed:      seed.Name,
			Rarity:    string(seed.Rarity),
			Stage:     stage,
			Value:     value,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPlantedEvent creates a planting event.
func NewPlantedEvent(slotID int, seed string, row, col int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GardenPlanted,
		Payload: PlantedPayloadV1{
			SlotID:    slotID,
			Seed:      seed,
			Row:       row,
			Col:       col,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewChallengeCompletedEvent creates a challenge completion event.
func NewChallengeCompletedEvent(slotID int, ch domain.Challenge) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeCompleted,
		Payload: ChallengeCompletedPayloadV1{
			SlotID:      slotID,
			Period:      string(ch.Period),
			Description: ch.Description,
			Reward:      ch.Reward,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewAchievementEvent creates an achievement unlock event.
func NewAchievementEvent(slotID int, key string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementUnlocked,
		Payload: AchievementPayloadV1{
			SlotID:    slotID,
			Key:       key,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewWeatherEvent creates a weather transition event.
func NewWeatherEvent(slotID int, w domain.Weather) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WeatherChanged,
		Payload: WeatherPayloadV1{
			SlotID:    slotID,
			Weather:   w,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSeasonEvent creates a season rollover event.
func NewSeasonEvent(slotID int, season domain.Season, day int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SeasonChanged,
		Payload: SeasonPayloadV1{
			SlotID:    slotID,
			Season:    season,
			Day:       day,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSlotEvent creates a save-slot lifecycle event.
func NewSlotEvent(typ Type, slotID int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    typ,
		Payload: SlotPayloadV1{
			SlotID:    slotID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewChatEvent creates an inbound chat event.
func NewChatEvent(msg domain.ChatMessage) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SyncChatMessage,
		Payload: ChatPayloadV1{Message: msg},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
