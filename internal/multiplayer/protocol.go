package multiplayer

import (
	"encoding/json"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Message is the wire envelope for both directions. The payload schema is
// determined by the kind.
type Message struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// newMessage wraps a payload struct in an envelope.
func newMessage(kind string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: kind, Payload: raw}, nil
}

// PresencePayload announces a peer coming online or going offline.
type PresencePayload struct {
	PeerID   string `json:"peer_id"`
	Username string `json:"username"`
}

// PeerGardenPayload carries a peer's shared garden.
type PeerGardenPayload struct {
	PeerID   string                `json:"peer_id"`
	Username string                `json:"username"`
	Snapshot domain.GardenSnapshot `json:"snapshot"`
}

// VisitRequestPayload asks the local player for permission to view their
// garden.
type VisitRequestPayload struct {
	PeerID   string `json:"peer_id"`
	Username string `json:"username"`
}

// FriendRequestPayload is an inbound friend request from a peer.
type FriendRequestPayload struct {
	PeerID   string `json:"peer_id"`
	Username string `json:"username"`
}

// FriendRespondedPayload reports a peer's answer to our friend request.
type FriendRespondedPayload struct {
	PeerID   string `json:"peer_id"`
	Username string `json:"username"`
	Accepted bool   `json:"accepted"`
}

// FriendRequestResultPayload is the server's verdict on an outbound friend
// request. A request to a nonexistent username fails here, before any
// pending relationship is created locally.
type FriendRequestResultPayload struct {
	Username string `json:"username"`
	PeerID   string `json:"peer_id,omitempty"`
	OK       bool   `json:"ok"`
	Reason   string `json:"reason,omitempty"`
}

// UnfriendedPayload reports that a peer removed us.
type UnfriendedPayload struct {
	PeerID string `json:"peer_id"`
}

// AnnouncementPayload is an out-of-band server broadcast.
type AnnouncementPayload struct {
	Text string `json:"text"`
}

// Outbound command payloads

// SendFriendRequestPayload asks the server to relay a friend request.
type SendFriendRequestPayload struct {
	Username string `json:"username"`
}

// RespondFriendPayload answers a pending received request.
type RespondFriendPayload struct {
	PeerID   string `json:"peer_id"`
	Accepted bool   `json:"accepted"`
}

// UnfriendPayload removes an accepted friend.
type UnfriendPayload struct {
	PeerID string `json:"peer_id"`
}

// SendMessagePayload sends a chat line. ReceiverID is empty for global
// chat.
type SendMessagePayload struct {
	Text       string `json:"text"`
	ReceiverID string `json:"receiver_id,omitempty"`
}

// RequestVisitPayload asks to view a peer's garden.
type RequestVisitPayload struct {
	PeerID string `json:"peer_id"`
}

// RespondVisitPayload answers an inbound visit request, attaching the
// garden when allowed.
type RespondVisitPayload struct {
	PeerID   string                 `json:"peer_id"`
	Allowed  bool                   `json:"allowed"`
	Snapshot *domain.GardenSnapshot `json:"snapshot,omitempty"`
}

// SnapshotPushPayload is the fire-and-forget garden push after a save.
type SnapshotPushPayload struct {
	Snapshot domain.GardenSnapshot `json:"snapshot"`
}
