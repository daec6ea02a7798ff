package engine

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

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *garden.Actions, *domain.GardenState, time.Time) {
	t.Helper()
	cat := catalog.Default()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return New(cat, opts...), garden.NewActions(cat), garden.NewState(1, cat, now), now
}

func TestWateringWindowAdvancesStages(t *testing.T) {
	eng, a, g, now := newTestEngine(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))
	require.NoError(t, a.Water(g, 0, 0, now))

	// carrot multiplier 1.0, fresh-state season multiplier 1.0, sunny
	// weather 1.0: interval = 2s. The 8s window fits 4 stage advances.
	res := eng.Tick(g, now.Add(domain.WaterGrowthWindow))

	p := g.CellAt(0, 0).Plant
	assert.Equal(t, 4, res.StagesAdvanced)
	assert.Equal(t, 4, p.GrowthStage)
	assert.True(t, p.IsFullyGrown)
	assert.Equal(t, 1, res.Matured)
	assert.True(t, g.CellAt(0, 0).Growth.Idle())
}

func TestGrowthStopsAfterWindowCloses(t *testing.T) {
	eng, a, g, now := newTestEngine(t)

	// pumpkin is a fall seed.
	g.Season.Season = domain.SeasonFall
	require.NoError(t, a.PlantSeed(g, 0, 0, "pumpkin", now))
	require.NoError(t, a.Water(g, 0, 0, now))

	// pumpkin multiplier 0.5: interval = 2s / 0.5 = 4s. The 8s window fits
	// exactly 2 stages; later ticks must not add more.
	eng.Tick(g, now.Add(domain.WaterGrowthWindow))
	stage := g.CellAt(0, 0).Plant.GrowthStage
	assert.Equal(t, 2, stage)

	res := eng.Tick(g, now.Add(time.Minute))
	assert.Zero(t, res.StagesAdvanced)
	assert.Equal(t, stage, g.CellAt(0, 0).Plant.GrowthStage)
}

func TestStageNeverExceedsMax(t *testing.T) {
	eng, a, g, now := newTestEngine(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "sprout_burst", now))
	require.NoError(t, a.Water(g, 0, 0, now))

	// sprout_burst multiplier 4.0 would fit far more than 4 advances in
	// the window; the stage must cap at MaxGrowthStage.
	eng.Tick(g, now.Add(domain.WaterGrowthWindow))
	p := g.CellAt(0, 0).Plant
	assert.Equal(t, domain.MaxGrowthStage, p.GrowthStage)
	assert.True(t, p.IsFullyGrown)
}

func TestMissedTicksAreCaughtUp(t *testing.T) {
	eng, a, g, now := newTestEngine(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))
	require.NoError(t, a.Water(g, 0, 0, now))

	// A single late tick must produce the same stages as many small ones.
	res := eng.Tick(g, now.Add(time.Hour))
	assert.Equal(t, 4, res.StagesAdvanced)
	assert.True(t, g.CellAt(0, 0).Plant.IsFullyGrown)
}

func TestSprinklerExpiry(t *testing.T) {
	eng, a, g, now := newTestEngine(t)
	require.NoError(t, a.BuySprinkler(g, "basic_sprinkler", now))
	require.NoError(t, a.PlaceSprinkler(g, 1, 1, "basic_sprinkler", now))

	res := eng.Tick(g, now.Add(time.Minute))
	assert.Zero(t, res.SprinklersExpired)
	assert.Len(t, g.Sprinklers, 1)

	// Past the 2 minute duration the unit is consumed, not returned.
	res = eng.Tick(g, now.Add(3*time.Minute))
	assert.Equal(t, 1, res.SprinklersExpired)
	assert.Empty(t, g.Sprinklers)
	assert.Zero(t, g.SprinklerInventory["basic_sprinkler"])
}

func TestSprinklerPassiveGrowth(t *testing.T) {
	eng, a, g, now := newTestEngine(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))
	g.Resources.Money = 500 // mega_sprinkler costs more than a fresh garden holds
	require.NoError(t, a.BuySprinkler(g, "mega_sprinkler", now))
	require.NoError(t, a.PlaceSprinkler(g, 1, 1, "mega_sprinkler", now))

	// First tick under coverage only arms the sprinkler clock.
	eng.Tick(g, now)
	assert.Zero(t, g.CellAt(0, 0).Plant.GrowthStage)

	// carrot multiplier 1.0, mega bonus 0.35: interval = 30s/1.35 ~ 22.2s.
	res := eng.Tick(g, now.Add(25*time.Second))
	assert.Equal(t, 1, res.StagesAdvanced)
	assert.Equal(t, 1, g.CellAt(0, 0).Plant.GrowthStage)
}

func TestSeasonRollsAfterSevenDays(t *testing.T) {
	eng, _, g, now := newTestEngine(t, WithDayLength(time.Minute))

	res := eng.Tick(g, now.Add(6*time.Minute))
	assert.True(t, res.DayAdvanced)
	assert.False(t, res.SeasonChanged)
	assert.Equal(t, 7, g.Season.Day)
	assert.Equal(t, domain.SeasonSpring, g.Season.Season)

	res = eng.Tick(g, now.Add(7*time.Minute))
	assert.True(t, res.SeasonChanged)
	assert.Equal(t, domain.SeasonSummer, g.Season.Season)
	assert.Equal(t, 1, g.Season.Day)
	assert.InDelta(t, 1.0, g.Season.Multiplier, 1e-9)
}

func TestStormDamageRegressesOneStage(t *testing.T) {
	eng, a, g, now := newTestEngine(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))
	p := g.CellAt(0, 0).Plant
	p.GrowthStage = 3

	g.Weather = domain.WeatherStormy
	g.LastStormRoll = now.Add(-domain.StormDamageInterval)

	// Run enough damage rolls that the 15% chance is certain to land, and
	// verify each hit removes exactly one stage.
	for i := 0; i < 200 && !p.RecentlyDamaged; i++ {
		g.LastStormRoll = now.Add(-domain.StormDamageInterval)
		eng.Tick(g, now)
	}
	require.True(t, p.RecentlyDamaged)
	assert.Less(t, p.GrowthStage, 3)
	assert.GreaterOrEqual(t, p.GrowthStage, 0)
}

func TestStormDamageNeverBelowZero(t *testing.T) {
	eng, a, g, now := newTestEngine(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))
	p := g.CellAt(0, 0).Plant

	g.Weather = domain.WeatherStormy
	for i := 0; i < 200; i++ {
		g.LastStormRoll = now.Add(-domain.StormDamageInterval)
		eng.Tick(g, now)
	}
	assert.Equal(t, 0, p.GrowthStage)
}

func TestFullProtectionBlocksStormDamage(t *testing.T) {
	eng, a, g, now := newTestEngine(t)
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))
	p := g.CellAt(0, 0).Plant
	p.GrowthStage = 2
	p.Bonuses.Protection = domain.StormDamageChance

	g.Weather = domain.WeatherStormy
	for i := 0; i < 50; i++ {
		g.LastStormRoll = now.Add(-domain.StormDamageInterval)
		eng.Tick(g, now)
	}
	assert.Equal(t, 2, p.GrowthStage)
	assert.False(t, p.RecentlyDamaged)
}

func TestNoStormDamageInFairWeather(t *testing.T) {
	eng, a, g, now := newTestEngine(t, WithWeatherInterval(time.Hour))
	require.NoError(t, a.PlantSeed(g, 0, 0, "carrot", now))
	p := g.CellAt(0, 0).Plant
	p.GrowthStage = 3

	for i := 0; i < 50; i++ {
		eng.Tick(g, now)
	}
	assert.Equal(t, 3, p.GrowthStage)
}

func TestWeatherRerollInterval(t *testing.T) {
	eng, _, g, now := newTestEngine(t, WithWeatherInterval(90*time.Second))

	eng.Tick(g, now.Add(time.Minute))
	assert.Equal(t, now, g.WeatherSince)

	eng.Tick(g, now.Add(2*time.Minute))
	assert.Equal(t, now.Add(2*time.Minute), g.WeatherSince)
}
