package sse

import "time"

// ClientEventBuffer is the buffer size for each client's event channel.
// A client that falls this far behind starts losing events.
const ClientEventBuffer = 50

// KeepaliveInterval is how often idle streams get a comment ping so
// intermediaries do not close the connection.
const KeepaliveInterval = 30 * time.Second

// Event types for SSE
const (
	// EventTypeHarvested is sent when a plant is harvested
	EventTypeHarvested = "garden.harvested"

	// EventTypeWeatherChanged is sent on a weather transition
	EventTypeWeatherChanged = "weather.changed"

	// EventTypeSeasonChanged is sent on a season rollover
	EventTypeSeasonChanged = "season.changed"

	// EventTypeChallengeCompleted is sent when a challenge finishes
	EventTypeChallengeCompleted = "challenge.completed"

	// EventTypeAchievement is sent when an achievement unlocks
	EventTypeAchievement = "achievement.unlocked"

	// EventTypeChat is sent for inbound multiplayer chat
	EventTypeChat = "chat.message"

	// EventTypeAnnouncement is sent for server broadcasts
	EventTypeAnnouncement = "announcement"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
)
