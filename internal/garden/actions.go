package garden

import (
	"fmt"
	"math"
	"time"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Actions applies player actions to a GardenState. Every method validates
// its preconditions up front and performs no mutation on failure.
type Actions struct {
	cat *catalog.Catalog
}

// NewActions creates the action layer bound to a catalog.
func NewActions(cat *catalog.Catalog) *Actions {
	return &Actions{cat: cat}
}

// PlantSeed plants seedType at (row, col). The seed must be in season and
// in stock, the player must afford it, and the cell must be free of plants
// and sprinklers.
func (a *Actions) PlantSeed(g *domain.GardenState, row, col int, seedType string, now time.Time) error {
	cell := g.CellAt(row, col)
	if cell == nil {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrInvalidCoordinates, row, col)
	}
	seed, err := a.cat.Plant(seedType)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrUnknownSeed, seedType)
	}
	if !seed.AvailableIn(g.Season.Season) {
		return fmt.Errorf("%w: %q in %s", domain.ErrSeasonUnavailable, seedType, g.Season.Season)
	}
	entry, ok := g.Shop[seedType]
	if !ok || entry.Stock <= 0 {
		return fmt.Errorf("%w: %q", domain.ErrOutOfStock, seedType)
	}
	if g.Resources.Money < seed.Cost {
		return fmt.Errorf("%w: need %d", domain.ErrInsufficientFunds, seed.Cost)
	}
	if cell.Plant != nil || g.SprinklerAt(row, col) >= 0 {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrCellOccupied, row, col)
	}

	entry.Stock--
	g.Resources.Money -= seed.Cost
	cell.Plant = &domain.Plant{
		TypeName:  seedType,
		PlantedAt: now,
	}
	cell.Growth = domain.CellGrowth{Phase: domain.GrowthIdle}
	a.applyBonuses(g, row, col)
	g.Stats.TotalPlanted++
	g.UpdatedAt = now
	return nil
}

// Water opens a watering growth window on the cell. Rejected while the
// cell's water cooldown has not elapsed; rejection consumes nothing.
func (a *Actions) Water(g *domain.GardenState, row, col int, now time.Time) error {
	cell := g.CellAt(row, col)
	if cell == nil {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrInvalidCoordinates, row, col)
	}
	if cell.Plant == nil {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrCellEmpty, row, col)
	}
	if g.Resources.Water <= 0 {
		return domain.ErrInsufficientWater
	}
	if now.Before(cell.WaterCooldownUntil) {
		return domain.ErrOnCooldown{Action: "water", Remaining: cell.WaterCooldownUntil.Sub(now)}
	}

	g.Resources.Water--
	cell.Growth = domain.CellGrowth{
		Phase:       domain.GrowthWatering,
		StartedAt:   now,
		LastAdvance: now,
	}
	cell.WaterCooldownUntil = now.Add(domain.WaterCooldown)
	g.Stats.TotalWatered++
	g.UpdatedAt = now
	return nil
}

// Fertilize opens a fertilizing growth window on the cell, replacing any
// active watering window.
func (a *Actions) Fertilize(g *domain.GardenState, row, col int, now time.Time) error {
	cell := g.CellAt(row, col)
	if cell == nil {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrInvalidCoordinates, row, col)
	}
	if cell.Plant == nil {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrCellEmpty, row, col)
	}
	if g.Resources.Fertilizer <= 0 {
		return domain.ErrInsufficientFert
	}
	if now.Before(cell.FertilizeCooldownUntil) {
		return domain.ErrOnCooldown{Action: "fertilize", Remaining: cell.FertilizeCooldownUntil.Sub(now)}
	}

	g.Resources.Fertilizer--
	cell.Growth = domain.CellGrowth{
		Phase:       domain.GrowthFertilizing,
		StartedAt:   now,
		LastAdvance: now,
	}
	cell.FertilizeCooldownUntil = now.Add(domain.FertilizerCooldown)
	g.Stats.TotalFertilized++
	g.UpdatedAt = now
	return nil
}

// HarvestResult describes the proceeds of one harvest.
type HarvestResult struct {
	Seed       domain.PlantType
	Stage      int
	FullyGrown bool
	Value      int
}

// Harvest collects the plant at (row, col). Harvesting before maturity is
// allowed at a reduced stage multiplier. The cell is reset to empty.
func (a *Actions) Harvest(g *domain.GardenState, row, col int, now time.Time) (*HarvestResult, error) {
	cell := g.CellAt(row, col)
	if cell == nil {
		return nil, fmt.Errorf("%w: (%d,%d)", domain.ErrInvalidCoordinates, row, col)
	}
	if cell.Plant == nil {
		return nil, fmt.Errorf("%w: (%d,%d)", domain.ErrCellEmpty, row, col)
	}
	seed, err := a.cat.Plant(cell.Plant.TypeName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSeed, cell.Plant.TypeName)
	}

	stage := cell.Plant.GrowthStage
	toolBonus := float64(g.Tools[domain.ToolHarvest].Level-domain.MinToolLevel) * domain.HarvestBonusPerLevel
	decoBonus := cell.Plant.Bonuses.HarvestValue
	value := int(math.Floor(float64(seed.BaseValue) * domain.StageValueMultipliers[stage] * (1 + toolBonus) * (1 + decoBonus)))

	result := &HarvestResult{
		Seed:       seed,
		Stage:      stage,
		FullyGrown: cell.Plant.IsFullyGrown,
		Value:      value,
	}

	g.Resources.Money += value
	g.Resources.Score += value
	g.Stats.TotalHarvests++
	g.Stats.MoneyEarned += value
	switch seed.Rarity {
	case domain.RarityRare:
		g.Stats.RareHarvests++
	case domain.RarityLegendary:
		g.Stats.LegendaryHarvests++
	}

	cell.Plant = nil
	cell.Growth = domain.CellGrowth{Phase: domain.GrowthIdle}
	g.UpdatedAt = now
	return result, nil
}

// Shovel digs up the plant at (row, col) without harvesting it, clearing
// the cell for replanting. A leveled shovel refunds part of the seed cost.
func (a *Actions) Shovel(g *domain.GardenState, row, col int, now time.Time) (int, error) {
	cell := g.CellAt(row, col)
	if cell == nil {
		return 0, fmt.Errorf("%w: (%d,%d)", domain.ErrInvalidCoordinates, row, col)
	}
	if cell.Plant == nil {
		return 0, fmt.Errorf("%w: (%d,%d)", domain.ErrCellEmpty, row, col)
	}
	seed, err := a.cat.Plant(cell.Plant.TypeName)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownSeed, cell.Plant.TypeName)
	}

	level := g.Tools[domain.ToolShovel].Level
	refund := int(math.Floor(float64(seed.Cost) * domain.ShovelRefundPerLevel * float64(level-domain.MinToolLevel)))

	g.Resources.Money += refund
	cell.Plant = nil
	cell.Growth = domain.CellGrowth{Phase: domain.GrowthIdle}
	g.Stats.TotalShoveled++
	g.UpdatedAt = now
	return refund, nil
}

// Expand grows the grid by one row and column, copying existing cells by
// position. Cost escalates x1.3 after each expansion.
func (a *Actions) Expand(g *domain.GardenState, now time.Time) error {
	if g.GardenSize >= domain.MaxGardenSize {
		return domain.ErrMaxGardenSize
	}
	if g.Resources.Money < g.ExpansionCost {
		return fmt.Errorf("%w: need %d", domain.ErrInsufficientFunds, g.ExpansionCost)
	}

	g.Resources.Money -= g.ExpansionCost
	newSize := g.GardenSize + 1
	grid := make([][]domain.Cell, newSize)
	for r := range grid {
		grid[r] = make([]domain.Cell, newSize)
		if r < g.GardenSize {
			copy(grid[r], g.Grid[r])
		}
	}
	g.Grid = grid
	g.GardenSize = newSize
	g.ExpansionCost = int(math.Floor(float64(g.ExpansionCost) * domain.ExpansionCostMultiplier))
	g.Stats.Expansions++
	g.UpdatedAt = now
	return nil
}
