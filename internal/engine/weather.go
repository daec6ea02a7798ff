package engine

import (
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// seasonMultipliers scales all windowed growth by the current season.
var seasonMultipliers = map[domain.Season]float64{
	domain.SeasonSpring: 1.1,
	domain.SeasonSummer: 1.0,
	domain.SeasonFall:   1.0,
	domain.SeasonWinter: 0.9,
}

// advanceCalendar advances the in-game day and rolls the season over after
// SeasonLengthDays.
func (e *Engine) advanceCalendar(g *domain.GardenState, now time.Time, res *Result) {
	for now.Sub(g.Season.LastDayAt) >= e.dayLength {
		g.Season.LastDayAt = g.Season.LastDayAt.Add(e.dayLength)
		g.Season.Day++
		res.DayAdvanced = true
		if g.Season.Day > domain.SeasonLengthDays {
			g.Season.Day = 1
			g.Season.Season = g.Season.Season.Next()
			g.Season.Multiplier = seasonMultipliers[g.Season.Season]
			res.SeasonChanged = true
			res.Season = g.Season.Season
		}
	}
	if g.Season.Multiplier == 0 {
		g.Season.Multiplier = seasonMultipliers[g.Season.Season]
	}
}

// rollWeather re-rolls the sky on a fixed interval. Weighted toward fair
// weather; storms are the rare destructive case.
func (e *Engine) rollWeather(g *domain.GardenState, now time.Time, res *Result) {
	if now.Sub(g.WeatherSince) < e.weatherEvery {
		return
	}

	roll := e.rng.Float64()
	var next domain.Weather
	switch {
	case roll < 0.40:
		next = domain.WeatherSunny
	case roll < 0.65:
		next = domain.WeatherCloudy
	case roll < 0.85:
		next = domain.WeatherRainy
	default:
		next = domain.WeatherStormy
	}

	g.WeatherSince = now
	if next != g.Weather {
		g.Weather = next
		res.WeatherChanged = true
		res.Weather = next
		if next == domain.WeatherStormy {
			g.LastStormRoll = now
		}
	}
}

// rollStormDamage regresses plants during storms. Each planted cell rolls
// independently against the adjusted chance max(0, base - protection); a
// hit decrements the growth stage by exactly one, never below zero.
func (e *Engine) rollStormDamage(g *domain.GardenState, now time.Time, res *Result) {
	if g.Weather != domain.WeatherStormy {
		return
	}
	if now.Sub(g.LastStormRoll) < domain.StormDamageInterval {
		return
	}
	g.LastStormRoll = now

	damaged := 0
	for r := 0; r < g.GardenSize; r++ {
		for c := 0; c < g.GardenSize; c++ {
			p := g.Grid[r][c].Plant
			if p == nil {
				continue
			}
			chance := domain.StormDamageChance - p.Bonuses.Protection
			if chance <= 0 {
				continue
			}
			if e.rng.Float64() >= chance {
				continue
			}
			if p.GrowthStage > 0 {
				p.GrowthStage--
				p.IsFullyGrown = false
			}
			p.RecentlyDamaged = true
			damaged++
		}
	}
	res.StormDamaged = damaged
	if damaged == 0 {
		g.Stats.StormsSurvived++
	}
}
