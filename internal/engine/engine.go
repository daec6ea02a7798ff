package engine

import (
	"math/rand"
	"time"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Engine advances a GardenState through one tick of simulated time. It is
// stateless across ticks; all progress lives in the GardenState, so a
// missed tick is simply discovered as more elapsed time on the next one.
type Engine struct {
	cat       *catalog.Catalog
	rng       *rand.Rand
	dayLength time.Duration
	weatherEvery time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects a deterministic random source (tests).
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithDayLength overrides the wall-clock length of one in-game day.
func WithDayLength(d time.Duration) Option {
	return func(e *Engine) { e.dayLength = d }
}

// WithWeatherInterval overrides how often the weather re-rolls.
func WithWeatherInterval(d time.Duration) Option {
	return func(e *Engine) { e.weatherEvery = d }
}

// New creates an engine bound to a catalog.
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		cat:          cat,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		dayLength:    5 * time.Minute,
		weatherEvery: 90 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result summarizes what one tick changed, for event publication.
type Result struct {
	StagesAdvanced    int
	Matured           int
	SprinklersExpired int
	StormDamaged      int
	WeatherChanged    bool
	Weather           domain.Weather
	DayAdvanced       bool
	SeasonChanged     bool
	Season            domain.Season
}

// Tick advances the garden to now. Growth-stage advancement runs before
// anything the caller layers on top (challenge progress, achievements), so
// a same-tick harvest can observe the new stage.
func (e *Engine) Tick(g *domain.GardenState, now time.Time) Result {
	var res Result

	res.SprinklersExpired = e.expireSprinklers(g, now)
	e.advanceWindows(g, now, &res)
	e.advanceSprinklerGrowth(g, now, &res)
	e.advanceCalendar(g, now, &res)
	e.rollWeather(g, now, &res)
	e.rollStormDamage(g, now, &res)

	if res.StagesAdvanced > 0 || res.StormDamaged > 0 || res.SprinklersExpired > 0 {
		g.UpdatedAt = now
	}
	return res
}

// expireSprinklers drops sprinklers whose duration elapsed. Expired units
// are consumed, not returned to inventory.
func (e *Engine) expireSprinklers(g *domain.GardenState, now time.Time) int {
	kept := g.Sprinklers[:0]
	expired := 0
	for _, s := range g.Sprinklers {
		if s.Expired(now) {
			expired++
			continue
		}
		kept = append(kept, s)
	}
	g.Sprinklers = kept
	return expired
}

// advanceWindows advances plants inside open watering/fertilizing windows.
// The window length stretches with the plant's water-efficiency bonus; the
// per-stage interval shrinks with the seed multiplier, decoration growth
// bonus, weather, and season.
func (e *Engine) advanceWindows(g *domain.GardenState, now time.Time, res *Result) {
	for r := 0; r < g.GardenSize; r++ {
		for c := 0; c < g.GardenSize; c++ {
			cell := &g.Grid[r][c]
			if cell.Plant == nil || cell.Growth.Idle() {
				continue
			}

			seed, err := e.cat.Plant(cell.Plant.TypeName)
			if err != nil {
				continue
			}

			var baseWindow, baseInterval time.Duration
			switch cell.Growth.Phase {
			case domain.GrowthWatering:
				baseWindow = domain.WaterGrowthWindow
				baseInterval = domain.WaterStageInterval
			case domain.GrowthFertilizing:
				baseWindow = domain.FertilizerGrowthWindow
				baseInterval = domain.FertilizerStageInterval
			default:
				continue
			}

			window := scaleDuration(baseWindow, 1+cell.Plant.Bonuses.WaterEfficiency)
			windowEnd := cell.Growth.StartedAt.Add(window)
			limit := now
			if windowEnd.Before(limit) {
				limit = windowEnd
			}

			interval := e.stageInterval(baseInterval, seed, cell.Plant, g)
			for !cell.Plant.IsFullyGrown {
				next := cell.Growth.LastAdvance.Add(interval)
				if next.After(limit) {
					break
				}
				cell.Growth.LastAdvance = next
				e.advanceStage(cell.Plant, res)
			}

			if !now.Before(windowEnd) || cell.Plant.IsFullyGrown {
				cell.Growth = domain.CellGrowth{Phase: domain.GrowthIdle}
			}
		}
	}
}

// advanceSprinklerGrowth applies passive coverage growth: one stage every
// 30s scaled by the seed multiplier, for any plant under at least one
// active sprinkler. Independent of watering.
func (e *Engine) advanceSprinklerGrowth(g *domain.GardenState, now time.Time, res *Result) {
	for r := 0; r < g.GardenSize; r++ {
		for c := 0; c < g.GardenSize; c++ {
			cell := &g.Grid[r][c]
			if cell.Plant == nil || cell.Plant.IsFullyGrown {
				continue
			}

			bonus, covered := e.bestCoverage(g, r, c, now)
			if !covered {
				cell.Plant.LastSprinklerAdv = time.Time{}
				continue
			}
			if cell.Plant.LastSprinklerAdv.IsZero() {
				cell.Plant.LastSprinklerAdv = now
				continue
			}

			seed, err := e.cat.Plant(cell.Plant.TypeName)
			if err != nil {
				continue
			}
			interval := scaleDuration(domain.SprinklerStageInterval, 1/(seed.GrowthMultiplier*(1+bonus)))
			for !cell.Plant.IsFullyGrown {
				next := cell.Plant.LastSprinklerAdv.Add(interval)
				if next.After(now) {
					break
				}
				cell.Plant.LastSprinklerAdv = next
				e.advanceStage(cell.Plant, res)
			}
		}
	}
}

// bestCoverage returns the strongest growth bonus among active sprinklers
// covering (row, col), and whether any cover it at all.
func (e *Engine) bestCoverage(g *domain.GardenState, row, col int, now time.Time) (float64, bool) {
	best := -1.0
	for _, s := range g.Sprinklers {
		if s.Expired(now) {
			continue
		}
		st, err := e.cat.Sprinkler(s.TypeName)
		if err != nil {
			continue
		}
		if s.Covers(row, col, st.Radius) && st.GrowthBonus > best {
			best = st.GrowthBonus
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func (e *Engine) advanceStage(p *domain.Plant, res *Result) {
	if p.GrowthStage >= domain.MaxGrowthStage {
		return
	}
	p.GrowthStage++
	p.RecentlyDamaged = false
	res.StagesAdvanced++
	if p.GrowthStage == domain.MaxGrowthStage {
		p.IsFullyGrown = true
		res.Matured++
	}
}

// stageInterval computes the effective time per stage for windowed growth.
func (e *Engine) stageInterval(base time.Duration, seed domain.PlantType, p *domain.Plant, g *domain.GardenState) time.Duration {
	mult := seed.GrowthMultiplier * (1 + p.Bonuses.Growth) * g.Weather.GrowthMultiplier() * g.Season.Multiplier
	if mult <= 0 {
		mult = 1
	}
	return scaleDuration(base, 1/mult)
}

func scaleDuration(d time.Duration, factor float64) time.Duration {
	return time.Duration(float64(d) * factor)
}
