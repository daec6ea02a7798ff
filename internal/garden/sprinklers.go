package garden

import (
	"fmt"
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// BuySprinkler purchases one sprinkler of the given type into inventory.
func (a *Actions) BuySprinkler(g *domain.GardenState, typeName string, now time.Time) error {
	st, err := a.cat.Sprinkler(typeName)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrUnknownSprinkler, typeName)
	}
	if g.Resources.Money < st.Cost {
		return fmt.Errorf("%w: need %d", domain.ErrInsufficientFunds, st.Cost)
	}
	g.Resources.Money -= st.Cost
	g.SprinklerInventory[typeName]++
	g.UpdatedAt = now
	return nil
}

// PlaceSprinkler places a sprinkler from inventory at (row, col). A cell
// with a plant cannot host a sprinkler, and only one sprinkler may occupy
// a position.
func (a *Actions) PlaceSprinkler(g *domain.GardenState, row, col int, typeName string, now time.Time) error {
	cell := g.CellAt(row, col)
	if cell == nil {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrInvalidCoordinates, row, col)
	}
	st, err := a.cat.Sprinkler(typeName)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrUnknownSprinkler, typeName)
	}
	if g.SprinklerInventory[typeName] <= 0 {
		return fmt.Errorf("%w: no %q in inventory", domain.ErrOutOfStock, typeName)
	}
	if cell.Plant != nil || g.SprinklerAt(row, col) >= 0 {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrCellOccupied, row, col)
	}

	g.SprinklerInventory[typeName]--
	g.Sprinklers = append(g.Sprinklers, domain.Sprinkler{
		TypeName:  typeName,
		Row:       row,
		Col:       col,
		PlacedAt:  now,
		ExpiresAt: now.Add(st.Duration),
	})
	g.UpdatedAt = now
	return nil
}

// PickUpSprinkler returns the sprinkler at (row, col) to inventory.
func (a *Actions) PickUpSprinkler(g *domain.GardenState, row, col int, now time.Time) error {
	idx := g.SprinklerAt(row, col)
	if idx < 0 {
		return fmt.Errorf("%w: no sprinkler at (%d,%d)", domain.ErrCellEmpty, row, col)
	}
	s := g.Sprinklers[idx]
	g.Sprinklers = append(g.Sprinklers[:idx], g.Sprinklers[idx+1:]...)
	g.SprinklerInventory[s.TypeName]++
	g.UpdatedAt = now
	return nil
}

// CoveringSprinklers returns the active sprinklers whose radius covers
// (row, col) at the given instant.
func (a *Actions) CoveringSprinklers(g *domain.GardenState, row, col int, now time.Time) []domain.Sprinkler {
	var out []domain.Sprinkler
	for _, s := range g.Sprinklers {
		if s.Expired(now) {
			continue
		}
		st, err := a.cat.Sprinkler(s.TypeName)
		if err != nil {
			continue
		}
		if s.Covers(row, col, st.Radius) {
			out = append(out, s)
		}
	}
	return out
}
