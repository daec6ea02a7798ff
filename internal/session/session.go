// Package session owns the live game instance for the active save slot.
// A Session binds one GardenState to a cooperative tick loop: each tick
// schedules the next, an isRunning guard makes Stop immediate, and a
// panic inside a tick is recovered at the tick boundary with a
// best-effort save before the loop resumes.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/challenge"
	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/economy"
	"github.com/willowbyte/gardenbloom/internal/engine"
	"github.com/willowbyte/gardenbloom/internal/event"
	"github.com/willowbyte/gardenbloom/internal/garden"
	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/metrics"
)

// SaveFunc persists the session's state. Provided by the save-slot
// manager so the session never touches storage keys directly.
type SaveFunc func(ctx context.Context, state *domain.GardenState) error

// Config tunes the session loop.
type Config struct {
	TickInterval  time.Duration
	AutosaveEvery time.Duration
}

// DefaultConfig returns the standard loop timings.
func DefaultConfig() Config {
	return Config{
		TickInterval:  time.Second,
		AutosaveEvery: 30 * time.Second,
	}
}

// Session is the live game for one slot. All state access goes through
// the session mutex; the tick loop and action methods never overlap.
type Session struct {
	slotID int
	cfg    Config

	mu    sync.Mutex
	state *domain.GardenState

	actions *garden.Actions
	eng     *engine.Engine
	econ    *economy.Service
	chal    *challenge.Service
	bus     event.Bus
	save    SaveFunc

	clock        func() time.Time
	lastAutosave time.Time

	isRunning atomic.Bool
	stop      chan struct{}
	wg        sync.WaitGroup
}

// New creates a session for the given state. The state is owned by the
// session until Stop returns.
func New(state *domain.GardenState, cat *catalog.Catalog, eng *engine.Engine, econ *economy.Service, chal *challenge.Service, bus event.Bus, save SaveFunc, cfg Config) *Session {
	return &Session{
		slotID:  state.SlotID,
		cfg:     cfg,
		state:   state,
		actions: garden.NewActions(cat),
		eng:     eng,
		econ:    econ,
		chal:    chal,
		bus:     bus,
		save:    save,
		clock:   time.Now,
	}
}

// WithClock overrides the time source (tests).
func (s *Session) WithClock(clock func() time.Time) *Session {
	s.clock = clock
	return s
}

// SlotID returns the slot this session is bound to.
func (s *Session) SlotID() int { return s.slotID }

// Start begins the tick loop. Idempotent.
func (s *Session) Start(ctx context.Context) {
	if !s.isRunning.CompareAndSwap(false, true) {
		return
	}
	s.stop = make(chan struct{})
	s.lastAutosave = s.clock()
	s.wg.Add(1)
	go s.loop(ctx)
}

// Stop halts the tick loop immediately: no scheduled continuation runs
// after Stop returns. Idempotent, and safe after the loop halted itself.
func (s *Session) Stop() {
	if s.isRunning.CompareAndSwap(true, false) {
		close(s.stop)
	}
	s.wg.Wait()
}

// halt signals loop shutdown from inside the loop goroutine. Unlike Stop
// it does not wait, since the loop cannot wait on itself.
func (s *Session) halt() {
	if s.isRunning.CompareAndSwap(true, false) {
		close(s.stop)
	}
}

// Running reports whether the tick loop is live.
func (s *Session) Running() bool { return s.isRunning.Load() }

// loop is the cooperative tick loop: each completed tick arms the timer
// for the next one.
func (s *Session) loop(ctx context.Context) {
	defer s.wg.Done()
	timer := time.NewTimer(s.cfg.TickInterval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			if !s.isRunning.Load() {
				return
			}
			s.tick(ctx)
			timer.Reset(s.cfg.TickInterval)
		case <-s.stop:
			return
		}
	}
}

// tick advances the game one step. Panics are contained here so a single
// bad tick cannot kill the loop; recovery clears transient state and
// attempts a save. If the recovery save itself fails the loop is stopped
// rather than left looping on the error.
func (s *Session) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log := logger.ForSlot(ctx, s.slotID)
			log.Error("tick panicked, recovering", "panic", r)
			s.mu.Lock()
			s.state.Particles = nil
			s.mu.Unlock()
			if err := s.SaveNow(ctx); err != nil {
				log.Error("recovery save failed, stopping session", "error", err)
				s.halt()
			}
		}
	}()

	now := s.clock()
	res, restocked, issued, unlocked := s.advance(now)

	metrics.TicksTotal.Inc()

	s.publishTick(ctx, res, restocked, issued, unlocked)

	if now.Sub(s.lastAutosave) >= s.cfg.AutosaveEvery {
		if err := s.SaveNow(ctx); err != nil {
			logger.ForSlot(ctx, s.slotID).Warn("autosave failed", "error", err)
		} else {
			s.lastAutosave = now
		}
	}
}

// advance runs the tick pipeline under the lock. A panic in any stage
// unwinds through the deferred unlock, so the recover handler in tick
// never sees the mutex held.
func (s *Session) advance(now time.Time) (engine.Result, bool, bool, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.eng.Tick(s.state, now)
	restocked := s.econ.MaybeRestock(s.state, now)
	issued := s.chal.EnsureCurrent(s.state, now)
	unlocked := s.chal.CheckAchievements(s.state)
	return res, restocked, issued, unlocked
}

func (s *Session) publishTick(ctx context.Context, res engine.Result, restocked, issued bool, unlocked []string) {
	if res.WeatherChanged {
		s.publish(ctx, event.NewWeatherEvent(s.slotID, res.Weather))
	}
	if res.SeasonChanged {
		s.mu.Lock()
		day := s.state.Season.Day
		s.mu.Unlock()
		s.publish(ctx, event.NewSeasonEvent(s.slotID, res.Season, day))
	}
	if restocked {
		s.publish(ctx, event.NewSlotEvent(event.ShopRestocked, s.slotID))
	}
	if issued {
		s.publish(ctx, event.NewSlotEvent(event.ChallengeIssued, s.slotID))
	}
	for _, key := range unlocked {
		s.publish(ctx, event.NewAchievementEvent(s.slotID, key))
	}
}

func (s *Session) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.ForSlot(ctx, s.slotID).Warn("event publish failed", "event_type", evt.Type, "error", err)
	}
}

// SaveNow persists the current state through the manager-provided save
// hook.
func (s *Session) SaveNow(ctx context.Context) error {
	if s.save == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, s.state)
}

// Mutate applies fn to the live state under the session lock. Used by the
// admin dispatcher; normal gameplay goes through the typed action methods.
func (s *Session) Mutate(fn func(*domain.GardenState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// StateCopy returns a deep copy of the session state for read-only use
// (HTTP views, snapshots). The copy drops transient particle state.
func (s *Session) StateCopy() (*domain.GardenState, error) {
	s.mu.Lock()
	raw, err := json.Marshal(s.state)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var out domain.GardenState
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Snapshot captures the shareable garden snapshot for multiplayer pushes.
func (s *Session) Snapshot() domain.GardenSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SnapshotOf(s.state, s.clock())
}
