// Package slot manages the three save slots: activation, persistence,
// reset, and background growth for the slots the player is not looking
// at. At most one slot is active at a time; its state lives in a running
// session and everything else lives in the store.
package slot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/challenge"
	"github.com/willowbyte/gardenbloom/internal/concurrency"
	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/economy"
	"github.com/willowbyte/gardenbloom/internal/engine"
	"github.com/willowbyte/gardenbloom/internal/event"
	"github.com/willowbyte/gardenbloom/internal/garden"
	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/session"
	"github.com/willowbyte/gardenbloom/internal/store"
)

// Config tunes slot management.
type Config struct {
	// RecentSaveSkip suppresses background advancement for a slot whose
	// last foreground save is younger than this.
	RecentSaveSkip time.Duration
	// AdminChangeSkip suppresses background advancement after an admin
	// edit to the slot.
	AdminChangeSkip time.Duration
	// Session is passed through to sessions created on activation.
	Session session.Config
}

// DefaultConfig returns the standard slot timings.
func DefaultConfig() Config {
	return Config{
		RecentSaveSkip:  time.Minute,
		AdminChangeSkip: 2 * time.Minute,
		Session:         session.DefaultConfig(),
	}
}

// Manager owns slot lifecycle. Lifecycle transitions serialize on the
// manager mutex, so at most one slot is ever active; store writes for a
// given slot serialize on that slot's lock.
type Manager struct {
	store *store.Store
	locks *concurrency.LockManager
	cat   *catalog.Catalog
	eng   *engine.Engine
	econ  *economy.Service
	chal  *challenge.Service
	bus   event.Bus
	cfg   Config
	clock func() time.Time

	// mu serializes Activate/Deactivate/Reset. The active pointer itself
	// is atomic so the background job and event subscribers can read it
	// without touching mu.
	mu     sync.Mutex
	active atomic.Pointer[session.Session]
}

// NewManager creates a slot manager.
func NewManager(st *store.Store, locks *concurrency.LockManager, cat *catalog.Catalog, eng *engine.Engine, econ *economy.Service, chal *challenge.Service, bus event.Bus, cfg Config) *Manager {
	return &Manager{
		store: st,
		locks: locks,
		cat:   cat,
		eng:   eng,
		econ:  econ,
		chal:  chal,
		bus:   bus,
		cfg:   cfg,
		clock: time.Now,
	}
}

// WithClock overrides the time source (tests).
func (m *Manager) WithClock(clock func() time.Time) *Manager {
	m.clock = clock
	return m
}

func validateSlotID(slotID int) error {
	if slotID < domain.MinSlotID || slotID > domain.MaxSlotID {
		return fmt.Errorf("%w: %d", domain.ErrSlotNotFound, slotID)
	}
	return nil
}

// Active returns the running session, or nil when no slot is active.
func (m *Manager) Active() *session.Session {
	return m.active.Load()
}

// ActiveSlotID returns the active slot id, or 0 when none is active.
func (m *Manager) ActiveSlotID() int {
	if sess := m.active.Load(); sess != nil {
		return sess.SlotID()
	}
	return 0
}

// Activate switches play to the given slot. Any currently active slot is
// stopped and saved first, synchronously, so its state is on disk before
// the new slot starts ticking. Activating the already-active slot is a
// no-op.
func (m *Manager) Activate(ctx context.Context, slotID int) error {
	if err := validateSlotID(slotID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if sess := m.active.Load(); sess != nil && sess.SlotID() == slotID {
		return nil
	}
	m.deactivateLocked(ctx)

	lock := m.locks.SlotLock(slotID)
	lock.Lock()
	state := m.loadOrCreate(ctx, slotID)
	sess := session.New(state, m.cat, m.eng, m.econ, m.chal, m.bus, m.saveActive(slotID), m.cfg.Session)
	// Published before the lock drops so the background job's re-check
	// sees the slot as active.
	m.active.Store(sess)
	lock.Unlock()

	sess.Start(ctx)

	m.publish(ctx, event.NewSlotEvent(event.SlotActivated, slotID))
	logger.ForSlot(ctx, slotID).Info("slot activated")
	return nil
}

// Deactivate stops the active slot, if any, and saves it synchronously.
// The session loop is fully stopped before the save runs, so no tick can
// write after the final save.
func (m *Manager) Deactivate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deactivateLocked(ctx)
	return nil
}

// deactivateLocked does the work of Deactivate under the manager mutex.
// The slot lock is not held here: the save hook takes it itself, and the
// active marker keeps the background job away until after the final save.
func (m *Manager) deactivateLocked(ctx context.Context) {
	sess := m.active.Load()
	if sess == nil {
		return
	}
	slotID := sess.SlotID()

	sess.Stop()
	if err := sess.SaveNow(ctx); err != nil {
		logger.ForSlot(ctx, slotID).Error("final save failed on deactivate", "error", err)
	}
	m.active.Store(nil)

	m.publish(ctx, event.NewSlotEvent(event.SlotDeactivated, slotID))
	logger.ForSlot(ctx, slotID).Info("slot deactivated")
}

// Reset wipes the slot back to a fresh garden. If the slot is active its
// session is replaced with a new one over the fresh state.
func (m *Manager) Reset(ctx context.Context, slotID int) error {
	if err := validateSlotID(slotID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.active.Load()
	wasActive := cur != nil && cur.SlotID() == slotID
	if wasActive {
		cur.Stop()
		m.active.Store(nil)
	}

	lock := m.locks.SlotLock(slotID)
	lock.Lock()

	now := m.clock()
	if err := m.store.Delete(ctx, store.LastSaveKey(slotID)); err != nil {
		lock.Unlock()
		return fmt.Errorf("reset slot %d: %w", slotID, err)
	}
	if err := m.store.Delete(ctx, store.AdminChangeKey(slotID)); err != nil {
		lock.Unlock()
		return fmt.Errorf("reset slot %d: %w", slotID, err)
	}
	state := garden.NewState(slotID, m.cat, now)
	if err := m.store.Put(ctx, store.SlotKey(slotID), state); err != nil {
		lock.Unlock()
		return fmt.Errorf("reset slot %d: %w", slotID, err)
	}
	lock.Unlock()

	if wasActive {
		sess := session.New(state, m.cat, m.eng, m.econ, m.chal, m.bus, m.saveActive(slotID), m.cfg.Session)
		sess.Start(ctx)
		m.active.Store(sess)
	}

	m.publish(ctx, event.NewSlotEvent(event.SlotReset, slotID))
	logger.ForSlot(ctx, slotID).Info("slot reset")
	return nil
}

// SaveActive persists the active slot immediately.
func (m *Manager) SaveActive(ctx context.Context) error {
	sess := m.active.Load()
	if sess == nil {
		return domain.ErrNoActiveSlot
	}
	return sess.SaveNow(ctx)
}

// saveActive builds the session save hook for one slot. Foreground saves
// write both the state and the last-save timestamp; the timestamp is what
// the background job checks to leave recently played slots alone.
func (m *Manager) saveActive(slotID int) session.SaveFunc {
	return func(ctx context.Context, state *domain.GardenState) error {
		lock := m.locks.SlotLock(slotID)
		lock.Lock()
		defer lock.Unlock()

		now := m.clock()
		state.UpdatedAt = now
		if err := m.store.Put(ctx, store.SlotKey(slotID), state); err != nil {
			return err
		}
		if err := m.store.PutTime(ctx, store.LastSaveKey(slotID), now); err != nil {
			return err
		}
		m.publish(ctx, event.NewSlotEvent(event.SlotSaved, slotID))
		return nil
	}
}

// loadOrCreate reads the slot's save record. A missing record, a corrupt
// record, or a record whose embedded slot id does not match the key all
// produce a fresh garden; the mismatch case also logs, since it means the
// store was edited outside the game.
func (m *Manager) loadOrCreate(ctx context.Context, slotID int) *domain.GardenState {
	log := logger.ForSlot(ctx, slotID)
	now := m.clock()

	var state domain.GardenState
	err := m.store.Get(ctx, store.SlotKey(slotID), &state)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return garden.NewState(slotID, m.cat, now)
	case errors.Is(err, store.ErrCorrupt):
		log.Warn("save record corrupt, starting fresh", "error", err)
		return garden.NewState(slotID, m.cat, now)
	case err != nil:
		log.Error("save record unreadable, starting fresh", "error", err)
		return garden.NewState(slotID, m.cat, now)
	}

	if state.SlotID != slotID {
		log.Warn("save record slot id mismatch, starting fresh",
			"record_slot", state.SlotID)
		return garden.NewState(slotID, m.cat, now)
	}
	return &state
}

// Summary describes one slot for the slot picker.
type Summary struct {
	SlotID    int       `json:"slot_id"`
	Exists    bool      `json:"exists"`
	Active    bool      `json:"active"`
	Money     int       `json:"money,omitempty"`
	Score     int       `json:"score,omitempty"`
	Day       int       `json:"day,omitempty"`
	Season    string    `json:"season,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Summaries returns the picker view of all slots.
func (m *Manager) Summaries(ctx context.Context) []Summary {
	out := make([]Summary, 0, domain.MaxSlotID)
	for slotID := domain.MinSlotID; slotID <= domain.MaxSlotID; slotID++ {
		s := Summary{SlotID: slotID, Active: m.ActiveSlotID() == slotID}

		var state domain.GardenState
		if err := m.store.Get(ctx, store.SlotKey(slotID), &state); err == nil && state.SlotID == slotID {
			s.Exists = true
			s.Money = state.Resources.Money
			s.Score = state.Resources.Score
			s.Day = state.Season.Day
			s.Season = string(state.Season.Season)
			s.UpdatedAt = state.UpdatedAt
		}
		out = append(out, s)
	}
	return out
}

func (m *Manager) publish(ctx context.Context, evt event.Event) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("event publish failed", "event_type", evt.Type, "error", err)
	}
}
