package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/economy"
	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/slot"
	"github.com/willowbyte/gardenbloom/internal/store"
)

// Dispatcher routes admin commands to the right copy of a slot's state:
// the live session when the slot is active, the stored record otherwise.
type Dispatcher struct {
	mgr   *slot.Manager
	store *store.Store
	econ  *economy.Service
	clock func() time.Time
}

// NewDispatcher creates an admin dispatcher.
func NewDispatcher(mgr *slot.Manager, st *store.Store, econ *economy.Service) *Dispatcher {
	return &Dispatcher{mgr: mgr, store: st, econ: econ, clock: time.Now}
}

// WithClock overrides the time source (tests).
func (d *Dispatcher) WithClock(clock func() time.Time) *Dispatcher {
	d.clock = clock
	return d
}

// Apply runs one command against the given slot and stamps the slot's
// admin-change timestamp on success.
func (d *Dispatcher) Apply(ctx context.Context, slotID int, cmd Command) error {
	if slotID < domain.MinSlotID || slotID > domain.MaxSlotID {
		return fmt.Errorf("%w: %d", domain.ErrSlotNotFound, slotID)
	}

	now := d.clock()
	fn, err := d.resolve(cmd)
	if err != nil {
		return err
	}

	if sess := d.mgr.Active(); sess != nil && sess.SlotID() == slotID {
		if err := sess.Mutate(func(g *domain.GardenState) error {
			return fn(g, cmd.Args, now)
		}); err != nil {
			return err
		}
		if err := sess.SaveNow(ctx); err != nil {
			return fmt.Errorf("admin save: %w", err)
		}
	} else {
		if err := d.applyStored(ctx, slotID, cmd, fn, now); err != nil {
			return err
		}
	}

	if err := d.store.PutTime(ctx, store.AdminChangeKey(slotID), now); err != nil {
		return fmt.Errorf("admin timestamp: %w", err)
	}

	logger.ForSlot(ctx, slotID).Info("admin command applied", "op", string(cmd.Op))
	return nil
}

// resolve maps the op to its function. Restock is special-cased because
// it needs the economy service's roll logic rather than a pure edit.
func (d *Dispatcher) resolve(cmd Command) (opFunc, error) {
	if cmd.Op == OpRestockShop {
		return func(g *domain.GardenState, _ Args, now time.Time) error {
			d.econ.Restock(g, now)
			return nil
		}, nil
	}
	fn, ok := ops[cmd.Op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown op %q", domain.ErrInvalidInput, cmd.Op)
	}
	return fn, nil
}

// applyStored edits an inactive slot's record in place.
func (d *Dispatcher) applyStored(ctx context.Context, slotID int, cmd Command, fn opFunc, now time.Time) error {
	var state domain.GardenState
	err := d.store.Get(ctx, store.SlotKey(slotID), &state)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: slot %d has no save", domain.ErrSlotNotFound, slotID)
	case err != nil:
		return fmt.Errorf("admin load: %w", err)
	}
	if state.SlotID != slotID {
		return fmt.Errorf("%w: record claims slot %d", domain.ErrSlotCorrupt, state.SlotID)
	}

	if err := fn(&state, cmd.Args, now); err != nil {
		return err
	}
	if err := d.store.Put(ctx, store.SlotKey(slotID), &state); err != nil {
		return fmt.Errorf("admin save: %w", err)
	}
	return nil
}
