package slot

import (
	"context"
	"errors"
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/scheduler"
	"github.com/willowbyte/gardenbloom/internal/store"
)

// BackgroundJob advances inactive slots so their gardens keep growing
// while the player is elsewhere. It runs on the shared scheduler and is
// safe to skip: a missed run just means the next one catches up more.
type BackgroundJob struct {
	mgr *Manager
}

// NewBackgroundJob creates the job for the given manager.
func NewBackgroundJob(mgr *Manager) *BackgroundJob {
	return &BackgroundJob{mgr: mgr}
}

// Register schedules the job at the given interval.
func (j *BackgroundJob) Register(sched *scheduler.Scheduler, interval time.Duration) {
	sched.Schedule(interval, j)
}

// Process advances every eligible inactive slot once.
func (j *BackgroundJob) Process(ctx context.Context) error {
	for slotID := domain.MinSlotID; slotID <= domain.MaxSlotID; slotID++ {
		j.advanceSlot(ctx, slotID)
	}
	return nil
}

// advanceSlot loads one inactive slot, runs growth, and writes the state
// back. The last-save timestamp is left untouched: it marks foreground
// saves only, and bumping it here would make the job suppress itself.
func (j *BackgroundJob) advanceSlot(ctx context.Context, slotID int) {
	m := j.mgr
	log := logger.ForSlot(ctx, slotID)

	// The active slot ticks in its own session. Never touch its key.
	if m.ActiveSlotID() == slotID {
		return
	}

	lock := m.locks.SlotLock(slotID)
	lock.Lock()
	defer lock.Unlock()

	// Re-check under the lock in case the slot was activated meanwhile.
	if m.ActiveSlotID() == slotID {
		return
	}

	now := m.clock()

	lastSave, err := m.store.GetTime(ctx, store.LastSaveKey(slotID))
	if err != nil {
		log.Warn("background advance: last-save read failed", "error", err)
		return
	}
	if !lastSave.IsZero() && now.Sub(lastSave) < m.cfg.RecentSaveSkip {
		return
	}

	adminChange, err := m.store.GetTime(ctx, store.AdminChangeKey(slotID))
	if err != nil {
		log.Warn("background advance: admin-change read failed", "error", err)
		return
	}
	if !adminChange.IsZero() && now.Sub(adminChange) < m.cfg.AdminChangeSkip {
		return
	}

	var state domain.GardenState
	err = m.store.Get(ctx, store.SlotKey(slotID), &state)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return
	case err != nil:
		log.Warn("background advance: load failed", "error", err)
		return
	}
	if state.SlotID != slotID {
		log.Warn("background advance: slot id mismatch, skipping",
			"record_slot", state.SlotID)
		return
	}

	res := m.eng.Tick(&state, now)
	m.econ.MaybeRestock(&state, now)
	m.chal.EnsureCurrent(&state, now)

	state.UpdatedAt = now
	if err := m.store.Put(ctx, store.SlotKey(slotID), &state); err != nil {
		log.Warn("background advance: save failed", "error", err)
		return
	}

	if res.StagesAdvanced > 0 || res.Matured > 0 {
		log.Debug("background advance applied",
			"stages", res.StagesAdvanced, "matured", res.Matured)
	}
}
