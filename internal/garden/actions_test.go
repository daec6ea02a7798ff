package garden

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/domain"
)

func newTestState(t *testing.T) (*Actions, *domain.GardenState, time.Time) {
	t.Helper()
	cat := catalog.Default()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewActions(cat), NewState(1, cat, now), now
}

func TestPlantSeed(t *testing.T) {
	a, g, now := newTestState(t)

	err := a.PlantSeed(g, 0, 0, "carrot", now)
	require.NoError(t, err)

	assert.Equal(t, domain.StartingMoney-5, g.Resources.Money)
	assert.Equal(t, 11, g.Shop["carrot"].Stock)
	assert.Equal(t, 1, g.Stats.TotalPlanted)

	cell := g.CellAt(0, 0)
	require.NotNil(t, cell.Plant)
	assert.Equal(t, "carrot", cell.Plant.TypeName)
	assert.Equal(t, 0, cell.Plant.GrowthStage)
	assert.True(t, cell.Growth.Idle())
}

func TestPlantSeedOccupiedCell(t *testing.T) {
	a, g, now := newTestState(t)

	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))
	err := a.PlantSeed(g, 0, 0, "carrot", now)
	assert.ErrorIs(t, err, domain.ErrCellOccupied)
	// Failed plant must not consume money or stock.
	assert.Equal(t, domain.StartingMoney-5, g.Resources.Money)
	assert.Equal(t, 11, g.Shop["carrot"].Stock)
}

func TestPlantSeedOutOfSeason(t *testing.T) {
	a, g, now := newTestState(t)

	// tomato is summer-only; the fresh state starts in spring.
	err := a.PlantSeed(g, 0, 0, "tomato", now)
	assert.ErrorIs(t, err, domain.ErrSeasonUnavailable)
}

func TestPlantSeedOutOfStock(t *testing.T) {
	a, g, now := newTestState(t)

	g.Shop["carrot"].Stock = 0
	err := a.PlantSeed(g, 0, 0, "carrot", now)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestPlantSeedInsufficientFunds(t *testing.T) {
	a, g, now := newTestState(t)

	g.Resources.Money = 3
	err := a.PlantSeed(g, 0, 0, "carrot", now)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 3, g.Resources.Money)
}

func TestPlantSeedInvalidCoordinates(t *testing.T) {
	a, g, now := newTestState(t)

	for _, coords := range [][2]int{{-1, 0}, {0, -1}, {g.GardenSize, 0}, {0, g.GardenSize}} {
		err := a.PlantSeed(g, coords[0], coords[1], "carrot", now)
		assert.ErrorIs(t, err, domain.ErrInvalidCoordinates, "coords %v", coords)
	}
}

func TestWaterOpensWindowAndSetsCooldown(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 1, 1, "carrot", now))

	err := a.Water(g, 1, 1, now)
	require.NoError(t, err)

	cell := g.CellAt(1, 1)
	assert.Equal(t, domain.GrowthWatering, cell.Growth.Phase)
	assert.Equal(t, now.Add(domain.WaterCooldown), cell.WaterCooldownUntil)
	assert.Equal(t, domain.StartingWater-1, g.Resources.Water)
}

func TestWaterOnCooldownConsumesNothing(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 1, 1, "carrot", now))
	require.NoError(t, a.Water(g, 1, 1, now))

	err := a.Water(g, 1, 1, now.Add(3*time.Second))
	require.Error(t, err)

	var cd domain.ErrOnCooldown
	require.ErrorAs(t, err, &cd)
	assert.Equal(t, "water", cd.Action)
	assert.Equal(t, 5*time.Second, cd.Remaining)
	assert.Equal(t, domain.StartingWater-1, g.Resources.Water)

	// After the cooldown elapses the action succeeds again.
	require.NoError(t, a.Water(g, 1, 1, now.Add(domain.WaterCooldown)))
	assert.Equal(t, domain.StartingWater-2, g.Resources.Water)
}

func TestWaterEmptyCell(t *testing.T) {
	a, g, now := newTestState(t)
	err := a.Water(g, 0, 0, now)
	assert.ErrorIs(t, err, domain.ErrCellEmpty)
	assert.Equal(t, domain.StartingWater, g.Resources.Water)
}

func TestWaterWithoutWater(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))

	g.Resources.Water = 0
	err := a.Water(g, 0, 0, now)
	assert.ErrorIs(t, err, domain.ErrInsufficientWater)
}

func TestFertilizeReplacesWateringWindow(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))
	require.NoError(t, a.Water(g, 0, 0, now))

	later := now.Add(time.Second)
	require.NoError(t, a.Fertilize(g, 0, 0, later))

	cell := g.CellAt(0, 0)
	assert.Equal(t, domain.GrowthFertilizing, cell.Growth.Phase)
	assert.Equal(t, later, cell.Growth.StartedAt)
	assert.Equal(t, domain.StartingFertilizer-1, g.Resources.Fertilizer)
}

func TestHarvestImmature(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))

	g.CellAt(0, 0).Plant.GrowthStage = 1

	res, err := a.Harvest(g, 0, 0, now)
	require.NoError(t, err)

	// carrot base value 8, stage 1 multiplier 0.3 -> floor(2.4) = 2
	assert.Equal(t, 2, res.Value)
	assert.Equal(t, 1, res.Stage)
	assert.False(t, res.FullyGrown)
	assert.Equal(t, domain.StartingMoney-5+2, g.Resources.Money)
	assert.Nil(t, g.CellAt(0, 0).Plant)
}

func TestHarvestFullyGrown(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))

	p := g.CellAt(0, 0).Plant
	p.GrowthStage = domain.MaxGrowthStage
	p.IsFullyGrown = true

	res, err := a.Harvest(g, 0, 0, now)
	require.NoError(t, err)

	assert.Equal(t, 8, res.Value)
	assert.True(t, res.FullyGrown)
	assert.Equal(t, 1, g.Stats.TotalHarvests)
	assert.Equal(t, 8, g.Stats.MoneyEarned)
}

func TestHarvestToolBonus(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))

	p := g.CellAt(0, 0).Plant
	p.GrowthStage = domain.MaxGrowthStage
	p.IsFullyGrown = true
	g.Tools[domain.ToolHarvest].Level = 3

	res, err := a.Harvest(g, 0, 0, now)
	require.NoError(t, err)

	// 8 * 1.0 * (1 + 2*0.10) = 9.6 -> 9
	assert.Equal(t, 9, res.Value)
}

func TestHarvestRareCountsStat(t *testing.T) {
	a, g, now := newTestState(t)
	g.Resources.Money = 500
	require.NoError(t, a.PlantSeed(g, 0, 0, "golden_rose", now))

	_, err := a.Harvest(g, 0, 0, now)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Stats.RareHarvests)
	assert.Equal(t, 0, g.Stats.LegendaryHarvests)
}

func TestExpand(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 3, 3, "carrot", now))
	g.Resources.Money = 1000

	require.NoError(t, a.Expand(g, now))

	assert.Equal(t, domain.DefaultGardenSize+1, g.GardenSize)
	assert.Equal(t, 1000-domain.BaseExpansionCost, g.Resources.Money)
	// x1.3 escalation, floored
	assert.Equal(t, 195, g.ExpansionCost)
	// Existing plants keep their position.
	require.NotNil(t, g.CellAt(3, 3).Plant)
	assert.Nil(t, g.CellAt(4, 4).Plant)
}

func TestExpandAtMaxSize(t *testing.T) {
	a, g, now := newTestState(t)
	g.GardenSize = domain.MaxGardenSize
	g.Resources.Money = 100000

	err := a.Expand(g, now)
	assert.ErrorIs(t, err, domain.ErrMaxGardenSize)
}

func TestExpandInsufficientFunds(t *testing.T) {
	a, g, now := newTestState(t)
	g.Resources.Money = 10

	err := a.Expand(g, now)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, domain.DefaultGardenSize, g.GardenSize)
}

func TestShovelClearsCell(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))

	refund, err := a.Shovel(g, 0, 0, now)
	require.NoError(t, err)

	// A level-1 shovel refunds nothing; the plant is just gone.
	assert.Equal(t, 0, refund)
	assert.Nil(t, g.CellAt(0, 0).Plant)
	assert.True(t, g.CellAt(0, 0).Growth.Idle())
	assert.Equal(t, 1, g.Stats.TotalShoveled)
	assert.Equal(t, domain.StartingMoney-5, g.Resources.Money)
}

func TestShovelRefundScalesWithToolLevel(t *testing.T) {
	a, g, now := newTestState(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "tulip", now))
	moneyAfterPlant := g.Resources.Money

	g.Tools[domain.ToolShovel].Level = 4

	refund, err := a.Shovel(g, 0, 0, now)
	require.NoError(t, err)

	// tulip costs 9; 9 * 0.10 * 3 levels above base floors to 2.
	assert.Equal(t, 2, refund)
	assert.Equal(t, moneyAfterPlant+2, g.Resources.Money)
}

func TestShovelEmptyCell(t *testing.T) {
	a, g, now := newTestState(t)

	_, err := a.Shovel(g, 0, 0, now)
	assert.ErrorIs(t, err, domain.ErrCellEmpty)
	assert.Equal(t, 0, g.Stats.TotalShoveled)
}

func TestShovelInvalidCoordinates(t *testing.T) {
	a, g, now := newTestState(t)

	_, err := a.Shovel(g, -1, 0, now)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)

	_, err = a.Shovel(g, 0, g.GardenSize, now)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}
