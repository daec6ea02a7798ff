// Package multiplayer maintains the connection to the sync server:
// garden snapshot pushes, friend presence, chat, and garden visits. The
// game never depends on the connection being up; every outbound path
// degrades to local-only play when the server is unreachable.
package multiplayer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/event"
	"github.com/willowbyte/gardenbloom/internal/metrics"
)

// State is the connection lifecycle.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Callbacks surface inbound events that need a decision or reaction
// outside this package. All callbacks are optional and are invoked from
// the read loop, so they must not block.
type Callbacks struct {
	// OnVisitRequest prompts the local player to allow or deny a garden
	// visit. The answer goes back through RespondVisit.
	OnVisitRequest func(ctx context.Context, req VisitRequestPayload)
	// OnForcedLogout runs after the client has discarded its credential.
	OnForcedLogout func(ctx context.Context)
	// OnFriendRequestFailed reports a rejected outbound friend request,
	// such as a nonexistent username.
	OnFriendRequestFailed func(ctx context.Context, username, reason string)
	// OnAnnouncement displays a server broadcast.
	OnAnnouncement func(ctx context.Context, text string)
}

// Client manages the WebSocket connection to the sync server
type Client struct {
	url   string
	token string
	conn  *websocket.Conn
	mu    sync.RWMutex

	shutdown chan struct{}
	wg       sync.WaitGroup

	// Connection state
	state   State
	dormant bool // set after too many consecutive failures

	// Reconnection management
	wakeup chan struct{} // triggers reconnection from dormant mode

	// Outbound pending snapshot. Last-write-wins: only the newest unsent
	// snapshot is kept.
	pendingMu sync.Mutex
	pending   *domain.GardenSnapshot

	pushLimiter *rate.Limiter
	chatLimiter *rate.Limiter

	social *socialState
	cb     Callbacks
	bus    event.Bus
	clock  func() time.Time
}

// NewClient creates a sync client. The token is the bearer credential
// presented at connect time.
func NewClient(url, token string, bus event.Bus, cb Callbacks) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:         url,
		token:       token,
		shutdown:    make(chan struct{}),
		wakeup:      make(chan struct{}, 1),
		state:       StateDisconnected,
		pushLimiter: rate.NewLimiter(SnapshotPushPerSecond, SnapshotPushBurst),
		chatLimiter: rate.NewLimiter(ChatPerSecond, ChatBurst),
		social:      newSocialState(),
		cb:          cb,
		bus:         bus,
		clock:       time.Now,
	}
}

// Start begins the WebSocket connection with auto-reconnect
func (c *Client) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop gracefully shuts down the client
func (c *Client) Stop() {
	close(c.shutdown)
	c.wg.Wait()

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsConnected returns whether the client is currently connected
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Friends returns the current friend list.
func (c *Client) Friends() []domain.Friend {
	return c.social.Friends()
}

// ChatHistory returns the bounded chat log, oldest first.
func (c *Client) ChatHistory() []domain.ChatMessage {
	return c.social.ChatHistory()
}

// PeerGarden returns a cached peer garden snapshot.
func (c *Client) PeerGarden(peerID string) (domain.PeerSnapshot, error) {
	p, ok := c.social.PeerGarden(peerID)
	if !ok {
		return domain.PeerSnapshot{}, fmt.Errorf("%w: %s", domain.ErrUnknownPeer, peerID)
	}
	return p, nil
}

// NotifySaved records the latest garden snapshot and pushes it if the
// connection and rate limit allow. Pushes are fire-and-forget: a lost
// push self-heals on the next save.
func (c *Client) NotifySaved(ctx context.Context, snap domain.GardenSnapshot) {
	c.pendingMu.Lock()
	c.pending = &snap
	c.pendingMu.Unlock()

	if !c.IsConnected() {
		return
	}
	if !c.pushLimiter.Allow() {
		slog.Debug(LogMsgSnapshotSkipped)
		return
	}
	c.flushPending(ctx)
}

// flushPending sends the pending snapshot, if any.
func (c *Client) flushPending(ctx context.Context) {
	c.pendingMu.Lock()
	snap := c.pending
	c.pending = nil
	c.pendingMu.Unlock()

	if snap == nil {
		return
	}
	if err := c.send(KindGardenSnapshot, SnapshotPushPayload{Snapshot: *snap}); err != nil {
		// Put it back so the next save or reconnect retries.
		c.pendingMu.Lock()
		if c.pending == nil {
			c.pending = snap
		}
		c.pendingMu.Unlock()
		return
	}
	slog.Debug(LogMsgSnapshotPushed, "slot", snap.SlotID)
}

// Outbound commands

// SendFriendRequest asks the server to relay a friend request. No local
// pending relationship is created until the server confirms the username
// exists.
func (c *Client) SendFriendRequest(username string) error {
	if username == "" {
		return fmt.Errorf("%w: empty username", domain.ErrInvalidInput)
	}
	return c.send(KindSendFriendRequest, SendFriendRequestPayload{Username: username})
}

// RespondFriendRequest answers a pending received request.
func (c *Client) RespondFriendRequest(peerID string, accepted bool) error {
	f, ok := c.social.Friend(peerID)
	if !ok || f.State != domain.FriendPendingReceived {
		return fmt.Errorf("%w: no pending request from %s", domain.ErrUnknownPeer, peerID)
	}
	if err := c.send(KindRespondFriend, RespondFriendPayload{PeerID: peerID, Accepted: accepted}); err != nil {
		return err
	}
	if accepted {
		c.social.upsertFriend(peerID, f.Username, domain.FriendAccepted, c.clock())
	} else {
		c.social.removeFriend(peerID)
	}
	return nil
}

// Unfriend removes an accepted friend on both sides.
func (c *Client) Unfriend(peerID string) error {
	if _, ok := c.social.Friend(peerID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownPeer, peerID)
	}
	if err := c.send(KindUnfriend, UnfriendPayload{PeerID: peerID}); err != nil {
		return err
	}
	c.social.removeFriend(peerID)
	return nil
}

// SendMessage sends a chat line. receiverID is empty for global chat.
func (c *Client) SendMessage(text, receiverID string) error {
	if text == "" {
		return fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}
	if !c.chatLimiter.Allow() {
		return fmt.Errorf("%w: chat rate limit", domain.ErrInvalidInput)
	}
	return c.send(KindSendMessage, SendMessagePayload{Text: text, ReceiverID: receiverID})
}

// RequestVisit asks to view a peer's garden.
func (c *Client) RequestVisit(peerID string) error {
	if _, ok := c.social.Friend(peerID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownPeer, peerID)
	}
	return c.send(KindRequestVisit, RequestVisitPayload{PeerID: peerID})
}

// RespondVisit answers an inbound visit request. The snapshot is attached
// only when the visit is allowed.
func (c *Client) RespondVisit(peerID string, allowed bool, snap *domain.GardenSnapshot) error {
	payload := RespondVisitPayload{PeerID: peerID, Allowed: allowed}
	if allowed {
		payload.Snapshot = snap
	}
	return c.send(KindRespondVisit, payload)
}

// send writes one envelope to the socket. A dormant client is woken so
// the next connect attempt happens promptly, but the current send still
// fails fast.
func (c *Client) send(kind string, payload any) error {
	c.mu.RLock()
	isDormant := c.dormant
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.RUnlock()

	if isDormant {
		slog.Debug(LogMsgDormantRetry, "kind", kind)
		select {
		case c.wakeup <- struct{}{}:
		default:
		}
		return domain.ErrNotConnected
	}
	if !connected || conn == nil {
		return domain.ErrNotConnected
	}

	msg, err := newMessage(kind, payload)
	if err != nil {
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("sync send %s: %w", kind, err)
	}
	metrics.SyncMessages.WithLabelValues("out", kind).Inc()
	return nil
}

func (c *Client) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	backoff := DefaultReconnectDelay
	consecutiveFailures := 0

	for {
		select {
		case <-c.shutdown:
			slog.Info(LogMsgClientStopped)
			return
		case <-ctx.Done():
			slog.Info(LogMsgClientStopped)
			return
		default:
		}

		err := c.connect(ctx)
		if err != nil {
			consecutiveFailures++
			c.setState(StateDisconnected)
			metrics.SyncReconnects.Inc()

			if consecutiveFailures >= MaxConsecutiveFailures {
				if stop := c.handleDormantMode(ctx, &consecutiveFailures, &backoff); stop {
					return
				}
				continue
			}

			// Log the first few failures and then periodically to avoid spam
			if consecutiveFailures <= 3 || consecutiveFailures%100 == 0 {
				slog.Warn(LogMsgReconnecting,
					"error", err,
					"backoff", backoff,
					"consecutive_failures", consecutiveFailures)
			}

			select {
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * ReconnectMultiplier)
				if backoff > MaxReconnectDelay {
					backoff = MaxReconnectDelay
				}
			case <-c.shutdown:
				return
			case <-ctx.Done():
				return
			}
		} else {
			if consecutiveFailures > 0 {
				slog.Info("Sync connection restored", "after_failures", consecutiveFailures)
			}
			backoff = DefaultReconnectDelay
			consecutiveFailures = 0
			c.mu.Lock()
			c.dormant = false
			c.mu.Unlock()
		}
	}
}

// handleDormantMode parks the reconnect loop after repeated failures and
// waits for a wakeup signal from an outbound send.
func (c *Client) handleDormantMode(ctx context.Context, consecutiveFailures *int, backoff *time.Duration) bool {
	c.mu.Lock()
	c.dormant = true
	c.mu.Unlock()

	slog.Warn(LogMsgGivingUp,
		"consecutive_failures", *consecutiveFailures,
		"max_allowed", MaxConsecutiveFailures)

	select {
	case <-c.wakeup:
		slog.Info("Sync waking from dormant mode")
		c.mu.Lock()
		c.dormant = false
		c.mu.Unlock()
		*backoff = DefaultReconnectDelay
		*consecutiveFailures = 0
		return false
	case <-c.shutdown:
		return true
	case <-ctx.Done():
		return true
	}
}

func (c *Client) connect(ctx context.Context) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token == "" {
		return fmt.Errorf("no sync credential configured")
	}

	slog.Info(LogMsgConnecting, "url", c.url)
	c.setState(StateConnecting)

	dialer := websocket.Dialer{
		ReadBufferSize:  ReadBufferSize,
		WriteBufferSize: WriteBufferSize,
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := dialer.DialContext(ctx, c.url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect: %w (status: %s, code: %d)", err, resp.Status, resp.StatusCode)
		}
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.setState(StateConnected)
	slog.Info(LogMsgConnected, "url", c.url)
	c.publish(ctx, event.NewSlotEvent(event.SyncConnected, 0))

	// Any snapshot saved while offline goes out now.
	c.flushPending(ctx)

	err = c.readLoop(ctx)
	c.publish(ctx, event.NewSlotEvent(event.SyncDisconnected, 0))
	return err
}

func (c *Client) readLoop(ctx context.Context) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	for {
		select {
		case <-c.shutdown:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			slog.Warn(LogMsgReadError, "error", err)
			return err
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue // ignore unparseable messages
		}
		metrics.SyncMessages.WithLabelValues("in", msg.Kind).Inc()
		c.dispatch(ctx, msg)
	}
}

// setState updates the connection state.
func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Client) publish(ctx context.Context, evt event.Event) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(ctx, evt); err != nil {
		slog.Warn("sync event publish failed", "event_type", evt.Type, "error", err)
	}
}
