package garden

import (
	"fmt"
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// PlaceDecoration buys and places a decoration at (row, col). The target
// cell must hold neither a plant nor another decoration.
func (a *Actions) PlaceDecoration(g *domain.GardenState, row, col int, typeName string, now time.Time) error {
	cell := g.CellAt(row, col)
	if cell == nil {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrInvalidCoordinates, row, col)
	}
	dt, err := a.cat.Decoration(typeName)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrUnknownDecoration, typeName)
	}
	if g.Resources.Money < dt.Cost {
		return fmt.Errorf("%w: need %d", domain.ErrInsufficientFunds, dt.Cost)
	}
	if cell.Plant != nil || cell.Decoration != nil {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrCellOccupied, row, col)
	}

	g.Resources.Money -= dt.Cost
	cell.Decoration = &domain.Decoration{TypeName: typeName, PlacedAt: now}
	a.RecomputeBonuses(g)
	g.UpdatedAt = now
	return nil
}

// RemoveDecoration removes the decoration at (row, col). No refund.
func (a *Actions) RemoveDecoration(g *domain.GardenState, row, col int, now time.Time) error {
	cell := g.CellAt(row, col)
	if cell == nil {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrInvalidCoordinates, row, col)
	}
	if cell.Decoration == nil {
		return fmt.Errorf("%w: no decoration at (%d,%d)", domain.ErrCellEmpty, row, col)
	}
	cell.Decoration = nil
	a.RecomputeBonuses(g)
	g.UpdatedAt = now
	return nil
}

// RecomputeBonuses rebuilds every plant's accumulated decoration bonuses
// from scratch. Bonuses are additive across overlapping 3x3 neighborhoods.
func (a *Actions) RecomputeBonuses(g *domain.GardenState) {
	for r := 0; r < g.GardenSize; r++ {
		for c := 0; c < g.GardenSize; c++ {
			if p := g.Grid[r][c].Plant; p != nil {
				p.Bonuses = a.bonusesAt(g, r, c)
			}
		}
	}
}

// applyBonuses recomputes bonuses for the single plant at (row, col).
func (a *Actions) applyBonuses(g *domain.GardenState, row, col int) {
	if p := g.Grid[row][col].Plant; p != nil {
		p.Bonuses = a.bonusesAt(g, row, col)
	}
}

func (a *Actions) bonusesAt(g *domain.GardenState, row, col int) domain.PlantBonuses {
	var b domain.PlantBonuses
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			cell := g.CellAt(row+dr, col+dc)
			if cell == nil || cell.Decoration == nil {
				continue
			}
			dt, err := a.cat.Decoration(cell.Decoration.TypeName)
			if err != nil {
				continue
			}
			b.Protection += dt.Bonus.Protection
			b.Growth += dt.Bonus.Growth
			b.HarvestValue += dt.Bonus.HarvestValue
			b.WaterEfficiency += dt.Bonus.WaterEfficiency
		}
	}
	return b
}
