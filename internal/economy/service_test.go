package economy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/garden"
)

func newTestService(t *testing.T, opts ...Option) (*Service, *domain.GardenState, time.Time) {
	t.Helper()
	cat := catalog.Default()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	opts = append([]Option{WithRand(rand.New(rand.NewSource(7)))}, opts...)
	return NewService(cat, opts...), garden.NewState(1, cat, now), now
}

func TestMaybeRestockRespectsInterval(t *testing.T) {
	svc, g, now := newTestService(t, WithRestockInterval(5*time.Minute))
	g.Shop["carrot"].Stock = 0

	assert.False(t, svc.MaybeRestock(g, now.Add(time.Minute)))
	assert.Zero(t, g.Shop["carrot"].Stock)

	assert.True(t, svc.MaybeRestock(g, now.Add(5*time.Minute)))
	assert.Equal(t, 4, g.Shop["carrot"].Stock)
	assert.Equal(t, now.Add(5*time.Minute), g.LastRestockAt)
}

func TestRestockClampsToMaxStock(t *testing.T) {
	svc, g, now := newTestService(t)
	g.Shop["carrot"].Stock = 10 // max 12, restock amount 4

	svc.Restock(g, now)
	assert.Equal(t, 12, g.Shop["carrot"].Stock)
}

func TestRestockFullEntriesUntouched(t *testing.T) {
	svc, g, now := newTestService(t)
	svc.Restock(g, now)
	assert.Equal(t, 12, g.Shop["carrot"].Stock)
}

func TestRareRestockBoost(t *testing.T) {
	svc, g, now := newTestService(t)
	g.Shop["golden_rose"].Stock = 0 // max 4, restock amount 1

	// Rare entries restock only behind a random roll; once the roll hits
	// the amount is boosted x3, clamped to max stock.
	for i := 0; i < 100 && g.Shop["golden_rose"].Stock == 0; i++ {
		svc.Restock(g, now)
	}
	assert.Equal(t, 3, g.Shop["golden_rose"].Stock)
}

func TestRestockCreatesMissingEntries(t *testing.T) {
	svc, g, now := newTestService(t)
	delete(g.Shop, "carrot")

	svc.Restock(g, now)
	entry, ok := g.Shop["carrot"]
	require.True(t, ok)
	assert.Equal(t, 4, entry.Stock)
	assert.Equal(t, 12, entry.MaxStock)
}

func TestBuyWater(t *testing.T) {
	svc, g, now := newTestService(t)

	require.NoError(t, svc.BuyWater(g, now))
	assert.Equal(t, domain.StartingMoney-WaterRefillCost, g.Resources.Money)
	assert.Equal(t, domain.StartingWater+WaterRefillAmount, g.Resources.Water)
}

func TestBuyWaterToolBonus(t *testing.T) {
	svc, g, now := newTestService(t)
	g.Tools[domain.ToolWater].Level = 3

	require.NoError(t, svc.BuyWater(g, now))
	// +2 extra per level above base
	assert.Equal(t, domain.StartingWater+WaterRefillAmount+4, g.Resources.Water)
}

func TestBuyFertilizerInsufficientFunds(t *testing.T) {
	svc, g, now := newTestService(t)
	g.Resources.Money = FertilizerRefillCost - 1

	err := svc.BuyFertilizer(g, now)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, domain.StartingFertilizer, g.Resources.Fertilizer)
}

func TestUpgradeTool(t *testing.T) {
	svc, g, now := newTestService(t)
	g.Resources.Money = 500
	cost := g.Tools[domain.ToolWater].UpgradeCost

	require.NoError(t, svc.UpgradeTool(g, domain.ToolWater, now))

	tool := g.Tools[domain.ToolWater]
	assert.Equal(t, 2, tool.Level)
	assert.Equal(t, 500-cost, g.Resources.Money)
	assert.Equal(t, int(float64(cost)*domain.ToolUpgradeCostMultiplier), tool.UpgradeCost)
	// Water upgrades grant an immediate refill bump.
	assert.Equal(t, domain.StartingWater+domain.ResourceBonusPerLevel, g.Resources.Water)
}

func TestUpgradeToolAtMaxLevel(t *testing.T) {
	svc, g, now := newTestService(t)
	g.Resources.Money = 100000
	g.Tools[domain.ToolHarvest].Level = domain.MaxToolLevel

	err := svc.UpgradeTool(g, domain.ToolHarvest, now)
	assert.ErrorIs(t, err, domain.ErrMaxLevel)
}

func TestUpgradeUnknownTool(t *testing.T) {
	svc, g, now := newTestService(t)

	err := svc.UpgradeTool(g, domain.ToolKind("chainsaw"), now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
