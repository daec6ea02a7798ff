package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one message on the browser event stream.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Client is one connected browser stream. Events arrive on EventChannel
// until Unregister or Stop closes it.
type Client struct {
	ID           string
	EventChannel chan Event
	filter       map[string]struct{}
}

func (c *Client) wants(eventType string) bool {
	if c.filter == nil {
		return true
	}
	_, ok := c.filter[eventType]
	return ok
}

// Hub fans game events out to connected SSE clients. Registration and
// broadcast run against a locked registry; sends never block, so a slow
// client loses events rather than stalling the tick path that produced
// them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Register adds a client. An empty eventTypes list subscribes to every
// event type. After Stop the returned client's channel is already closed.
func (h *Hub) Register(eventTypes []string) *Client {
	c := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		c.filter = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			c.filter[t] = struct{}{}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.EventChannel)
		return c
	}
	h.clients[c.ID] = c
	return c
}

// Unregister drops the client and closes its channel. Unknown ids are a
// no-op, so disconnect cleanup can race shutdown safely.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		close(c.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast delivers the event to every client whose filter matches.
func (h *Hub) Broadcast(eventType string, payload any) {
	evt := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if !c.wants(eventType) {
			continue
		}
		select {
		case c.EventChannel <- evt:
		default:
			// Client buffer full; drop for this client only.
		}
	}
}

// Stop closes every client stream and rejects later registrations.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, c := range h.clients {
		close(c.EventChannel)
		delete(h.clients, id)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders an event in wire format:
// "id: <id>\nevent: <type>\ndata: <json>\n\n".
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("id: %s\nevent: %s\ndata: %s\n\n", evt.ID, evt.Type, data)), nil
}
