package domain

import "time"

// FriendState is the relationship lifecycle between the local player and a
// peer. Accept/reject/unfriend are symmetric; relationships are deduped by
// (peer id, direction).
type FriendState string

const (
	FriendNone            FriendState = "none"
	FriendPendingSent     FriendState = "pending_sent"
	FriendPendingReceived FriendState = "pending_received"
	FriendAccepted        FriendState = "accepted"
)

// Friend is one peer relationship plus presence.
type Friend struct {
	PeerID   string      `json:"peer_id"`
	Username string      `json:"username"`
	State    FriendState `json:"state"`
	Online   bool        `json:"online"`
	Since    time.Time   `json:"since,omitempty"`
}

// ChatMessage is one line of friend chat. ReceiverID is empty for global
// messages.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	ReceiverID string    `json:"receiver_id,omitempty"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
}

// GardenSnapshot is the garden payload pushed to the sync server on every
// save and exchanged during garden visits. Last-write-wins; there is no
// history of snapshots.
type GardenSnapshot struct {
	SlotID       int              `json:"slot_id"`
	GardenSize   int              `json:"garden_size"`
	Grid         [][]Cell         `json:"grid"`
	Money        int              `json:"money"`
	Score        int              `json:"score"`
	Season       SeasonState      `json:"season"`
	Weather      Weather          `json:"weather"`
	Achievements AchievementState `json:"achievements"`
	Stats        StatCounters     `json:"stats"`
	TakenAt      time.Time        `json:"taken_at"`
}

// SnapshotOf captures the shareable subset of a garden state. The grid is
// deep-copied: snapshots outlive the lock they were taken under and must
// not alias cells the tick loop keeps mutating.
func SnapshotOf(g *GardenState, now time.Time) GardenSnapshot {
	grid := make([][]Cell, len(g.Grid))
	for r := range g.Grid {
		grid[r] = make([]Cell, len(g.Grid[r]))
		for c := range g.Grid[r] {
			cell := g.Grid[r][c]
			if cell.Plant != nil {
				plant := *cell.Plant
				cell.Plant = &plant
			}
			if cell.Decoration != nil {
				deco := *cell.Decoration
				cell.Decoration = &deco
			}
			grid[r][c] = cell
		}
	}
	return GardenSnapshot{
		SlotID:       g.SlotID,
		GardenSize:   g.GardenSize,
		Grid:         grid,
		Money:        g.Resources.Money,
		Score:        g.Resources.Score,
		Season:       g.Season,
		Weather:      g.Weather,
		Achievements: g.Achievements,
		Stats:        g.Stats,
		TakenAt:      now,
	}
}

// PeerSnapshot is a peer's shared garden keyed by their id.
type PeerSnapshot struct {
	PeerID   string         `json:"peer_id"`
	Username string         `json:"username"`
	Snapshot GardenSnapshot `json:"snapshot"`
}
