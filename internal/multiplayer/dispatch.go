package multiplayer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/event"
)

// dispatch routes one inbound message. Malformed payloads are logged and
// dropped rather than killing the read loop.
func (c *Client) dispatch(ctx context.Context, msg Message) {
	switch msg.Kind {
	case KindPeerOnline:
		var p PresencePayload
		if !decode(msg, &p) {
			return
		}
		c.social.setPresence(p.PeerID, p.Username, true)

	case KindPeerOffline:
		var p PresencePayload
		if !decode(msg, &p) {
			return
		}
		c.social.setPresence(p.PeerID, p.Username, false)

	case KindPeerGardenUpdate:
		var p PeerGardenPayload
		if !decode(msg, &p) {
			return
		}
		c.social.storePeerGarden(domain.PeerSnapshot{
			PeerID:   p.PeerID,
			Username: p.Username,
			Snapshot: p.Snapshot,
		})

	case KindGardenVisitRequest:
		var p VisitRequestPayload
		if !decode(msg, &p) {
			return
		}
		if c.cb.OnVisitRequest != nil {
			c.cb.OnVisitRequest(ctx, p)
		}

	case KindChatMessage:
		var m domain.ChatMessage
		if !decode(msg, &m) {
			return
		}
		c.social.appendChat(m)
		c.publish(ctx, event.NewChatEvent(m))

	case KindFriendRequestIn:
		var p FriendRequestPayload
		if !decode(msg, &p) {
			return
		}
		c.social.upsertFriend(p.PeerID, p.Username, domain.FriendPendingReceived, c.clock())

	case KindFriendResponded:
		var p FriendRespondedPayload
		if !decode(msg, &p) {
			return
		}
		if p.Accepted {
			c.social.upsertFriend(p.PeerID, p.Username, domain.FriendAccepted, c.clock())
		} else {
			c.social.removeFriend(p.PeerID)
		}

	case KindFriendRequestResult:
		var p FriendRequestResultPayload
		if !decode(msg, &p) {
			return
		}
		if p.OK {
			c.social.upsertFriend(p.PeerID, p.Username, domain.FriendPendingSent, c.clock())
		} else {
			slog.Info("friend request rejected by server",
				"username", p.Username, "reason", p.Reason)
			if c.cb.OnFriendRequestFailed != nil {
				c.cb.OnFriendRequestFailed(ctx, p.Username, p.Reason)
			}
		}

	case KindUnfriended:
		var p UnfriendedPayload
		if !decode(msg, &p) {
			return
		}
		c.social.removeFriend(p.PeerID)

	case KindForcedLogout:
		c.forceLogout(ctx)

	case KindAnnouncement:
		var p AnnouncementPayload
		if !decode(msg, &p) {
			return
		}
		c.publish(ctx, event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.SyncAnnouncement,
			Payload: p,
		})
		if c.cb.OnAnnouncement != nil {
			c.cb.OnAnnouncement(ctx, p.Text)
		}

	default:
		slog.Debug(LogMsgUnknownKind, "kind", msg.Kind)
	}
}

// forceLogout discards the credential and parks the client. The server
// has terminated the session; no reconnect happens until a new credential
// is configured.
func (c *Client) forceLogout(ctx context.Context) {
	slog.Warn(LogMsgForcedLogout)

	c.mu.Lock()
	c.token = ""
	c.dormant = true
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	c.social.reset()

	if c.cb.OnForcedLogout != nil {
		c.cb.OnForcedLogout(ctx)
	}
}

// SetToken installs a new credential and wakes the reconnect loop, used
// after a forced logout.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	select {
	case c.wakeup <- struct{}{}:
	default:
	}
}

func decode(msg Message, out any) bool {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		slog.Warn(LogMsgBadPayload, "kind", msg.Kind, "error", err)
		return false
	}
	return true
}
