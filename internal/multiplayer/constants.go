package multiplayer

import "time"

// Default configuration values
const (
	// DefaultURL is the default WebSocket URL for the sync server
	DefaultURL = "ws://127.0.0.1:9090/sync"

	// DefaultReconnectDelay is the initial delay before attempting to reconnect
	DefaultReconnectDelay = 1 * time.Second

	// MaxReconnectDelay is the maximum delay between reconnection attempts
	MaxReconnectDelay = 30 * time.Second

	// ReconnectMultiplier is the multiplier for exponential backoff
	ReconnectMultiplier = 2.0

	// MaxConsecutiveFailures is the maximum number of connection attempts before
	// going dormant
	MaxConsecutiveFailures = 10

	// WriteTimeout is the timeout for writing messages
	WriteTimeout = 10 * time.Second

	// ReadBufferSize is the WebSocket read buffer size
	ReadBufferSize = 4096

	// WriteBufferSize is the WebSocket write buffer size
	WriteBufferSize = 4096

	// PeerCacheSize bounds how many peer gardens are cached
	PeerCacheSize = 64

	// PeerCacheTTL expires stale peer gardens
	PeerCacheTTL = 10 * time.Minute

	// SnapshotPushPerSecond rate-limits outbound garden snapshot pushes
	SnapshotPushPerSecond = 1

	// SnapshotPushBurst allows a small burst of snapshot pushes
	SnapshotPushBurst = 3

	// ChatPerSecond rate-limits outbound chat messages
	ChatPerSecond = 2

	// ChatBurst allows a small burst of chat messages
	ChatBurst = 5
)

// Inbound message kinds
const (
	KindPeerOnline          = "peer-online"
	KindPeerOffline         = "peer-offline"
	KindPeerGardenUpdate    = "peer-garden-update"
	KindGardenVisitRequest  = "garden-visit-request"
	KindChatMessage         = "chat-message"
	KindFriendRequestIn     = "friend-request-received"
	KindFriendResponded     = "friend-request-responded"
	KindFriendRequestResult = "friend-request-result"
	KindUnfriended          = "unfriended-by-peer"
	KindForcedLogout        = "forced-logout"
	KindAnnouncement        = "server-announcement"
)

// Outbound message kinds
const (
	KindGardenSnapshot     = "garden-snapshot"
	KindSendFriendRequest  = "send-friend-request"
	KindRespondFriend      = "respond-friend-request"
	KindUnfriend           = "unfriend"
	KindSendMessage        = "send-message"
	KindRequestVisit       = "request-garden-visit"
	KindRespondVisit       = "respond-garden-visit"
)

// Log messages
const (
	LogMsgConnecting      = "Connecting to sync server"
	LogMsgConnected       = "Connected to sync server"
	LogMsgReconnecting    = "Reconnecting to sync server"
	LogMsgReadError       = "Error reading from sync server"
	LogMsgClientStopped   = "Sync client stopped"
	LogMsgGivingUp        = "Sync connection failed too many times, entering dormant mode"
	LogMsgDormantRetry    = "Sync dormant, retrying connection due to outbound message"
	LogMsgUnknownKind     = "Unknown sync message kind"
	LogMsgBadPayload      = "Malformed sync message payload"
	LogMsgSnapshotPushed  = "Garden snapshot pushed"
	LogMsgSnapshotSkipped = "Garden snapshot push rate-limited, kept pending"
	LogMsgForcedLogout    = "Forced logout received from sync server"
)
