package multiplayer

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// socialState holds the friend list, chat history, and cached peer gardens.
// It is mutated by the inbound dispatch loop and read by the HTTP layer, so
// everything goes through its own mutex.
type socialState struct {
	mu      sync.RWMutex
	friends map[string]*domain.Friend
	chat    []domain.ChatMessage
	peers   *expirable.LRU[string, domain.PeerSnapshot]
}

func newSocialState() *socialState {
	return &socialState{
		friends: make(map[string]*domain.Friend),
		peers:   expirable.NewLRU[string, domain.PeerSnapshot](PeerCacheSize, nil, PeerCacheTTL),
	}
}

// Friends returns a copy of the friend list.
func (s *socialState) Friends() []domain.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Friend, 0, len(s.friends))
	for _, f := range s.friends {
		out = append(out, *f)
	}
	return out
}

// Friend returns one relationship by peer id.
func (s *socialState) Friend(peerID string) (domain.Friend, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.friends[peerID]
	if !ok {
		return domain.Friend{}, false
	}
	return *f, true
}

// ChatHistory returns a copy of the bounded chat log, oldest first.
func (s *socialState) ChatHistory() []domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// PeerGarden returns a cached peer snapshot.
func (s *socialState) PeerGarden(peerID string) (domain.PeerSnapshot, bool) {
	return s.peers.Get(peerID)
}

// setPresence marks a peer online or offline, creating the entry if the
// peer is a friend we have not seen yet this session.
func (s *socialState) setPresence(peerID, username string, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.friends[peerID]
	if !ok {
		f = &domain.Friend{PeerID: peerID, Username: username, State: domain.FriendAccepted}
		s.friends[peerID] = f
	}
	if username != "" {
		f.Username = username
	}
	f.Online = online
}

// upsertFriend records a relationship transition. Transitions are deduped
// by (peer id, direction): an inbound request for a peer we already sent
// one to collapses straight to accepted on either side's response, and a
// repeat of the same directional request is a no-op.
func (s *socialState) upsertFriend(peerID, username string, state domain.FriendState, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.friends[peerID]
	if !ok {
		s.friends[peerID] = &domain.Friend{
			PeerID:   peerID,
			Username: username,
			State:    state,
			Since:    now,
		}
		return
	}
	if f.State == state {
		return
	}
	f.State = state
	if username != "" {
		f.Username = username
	}
	f.Since = now
}

// removeFriend drops the relationship and any cached garden.
func (s *socialState) removeFriend(peerID string) {
	s.mu.Lock()
	delete(s.friends, peerID)
	s.mu.Unlock()
	s.peers.Remove(peerID)
}

// appendChat adds a message to the bounded history.
func (s *socialState) appendChat(msg domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, msg)
	if len(s.chat) > domain.ChatHistoryLimit {
		s.chat = s.chat[len(s.chat)-domain.ChatHistoryLimit:]
	}
}

// storePeerGarden caches a peer's shared snapshot.
func (s *socialState) storePeerGarden(p domain.PeerSnapshot) {
	s.peers.Add(p.PeerID, p)
}

// reset clears everything, used on forced logout.
func (s *socialState) reset() {
	s.mu.Lock()
	s.friends = make(map[string]*domain.Friend)
	s.chat = nil
	s.mu.Unlock()
	s.peers.Purge()
}
