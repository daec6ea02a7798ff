// Package admin applies out-of-band edits to save slots: money grants,
// weather overrides, forced growth. Every applied command stamps the
// slot's admin-change timestamp so the background scheduler leaves the
// slot alone for a while afterward.
package admin

import (
	"fmt"
	"strconv"
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Op identifies one admin command.
type Op string

const (
	OpSetMoney      Op = "set-money"
	OpAddMoney      Op = "add-money"
	OpSetWater      Op = "set-water"
	OpSetFertilizer Op = "set-fertilizer"
	OpSetWeather    Op = "set-weather"
	OpSetSeason     Op = "set-season"
	OpGrowAll       Op = "grow-all"
	OpClearPlants   Op = "clear-plants"
	OpRestockShop   Op = "restock-shop"
)

// Args are the string arguments of one command, parsed per op.
type Args map[string]string

// Command is one admin edit.
type Command struct {
	Op   Op   `json:"op"`
	Args Args `json:"args,omitempty"`
}

// opFunc applies one command to a garden state. Pure: no I/O, no clock
// reads beyond the passed now.
type opFunc func(g *domain.GardenState, args Args, now time.Time) error

var ops = map[Op]opFunc{
	OpSetMoney:      setMoney,
	OpAddMoney:      addMoney,
	OpSetWater:      setWater,
	OpSetFertilizer: setFertilizer,
	OpSetWeather:    setWeather,
	OpSetSeason:     setSeason,
	OpGrowAll:       growAll,
	OpClearPlants:   clearPlants,
}

func intArg(args Args, key string) (int, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", domain.ErrInvalidInput, key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, key)
	}
	return n, nil
}

func setMoney(g *domain.GardenState, args Args, now time.Time) error {
	n, err := intArg(args, "amount")
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative amount", domain.ErrInvalidInput)
	}
	g.Resources.Money = n
	g.UpdatedAt = now
	return nil
}

func addMoney(g *domain.GardenState, args Args, now time.Time) error {
	n, err := intArg(args, "amount")
	if err != nil {
		return err
	}
	if g.Resources.Money+n < 0 {
		return fmt.Errorf("%w: balance would go negative", domain.ErrInvalidInput)
	}
	g.Resources.Money += n
	g.UpdatedAt = now
	return nil
}

func setWater(g *domain.GardenState, args Args, now time.Time) error {
	n, err := intArg(args, "amount")
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative amount", domain.ErrInvalidInput)
	}
	g.Resources.Water = n
	g.UpdatedAt = now
	return nil
}

func setFertilizer(g *domain.GardenState, args Args, now time.Time) error {
	n, err := intArg(args, "amount")
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative amount", domain.ErrInvalidInput)
	}
	g.Resources.Fertilizer = n
	g.UpdatedAt = now
	return nil
}

func setWeather(g *domain.GardenState, args Args, now time.Time) error {
	w := domain.Weather(args["weather"])
	switch w {
	case domain.WeatherSunny, domain.WeatherCloudy, domain.WeatherRainy, domain.WeatherStormy:
	default:
		return fmt.Errorf("%w: unknown weather %q", domain.ErrInvalidInput, args["weather"])
	}
	g.Weather = w
	g.WeatherSince = now
	g.UpdatedAt = now
	return nil
}

func setSeason(g *domain.GardenState, args Args, now time.Time) error {
	s := domain.Season(args["season"])
	switch s {
	case domain.SeasonSpring, domain.SeasonSummer, domain.SeasonFall, domain.SeasonWinter, domain.SeasonAll:
	default:
		return fmt.Errorf("%w: unknown season %q", domain.ErrInvalidInput, args["season"])
	}
	if s == domain.SeasonAll {
		return fmt.Errorf("%w: %q is not a calendar season", domain.ErrInvalidInput, args["season"])
	}
	g.Season.Season = s
	g.Season.Day = 1
	g.Season.LastDayAt = now
	g.UpdatedAt = now
	return nil
}

func growAll(g *domain.GardenState, args Args, now time.Time) error {
	for r := range g.Grid {
		for c := range g.Grid[r] {
			p := g.Grid[r][c].Plant
			if p == nil {
				continue
			}
			p.GrowthStage = domain.MaxGrowthStage
			p.IsFullyGrown = true
		}
	}
	g.UpdatedAt = now
	return nil
}

func clearPlants(g *domain.GardenState, args Args, now time.Time) error {
	for r := range g.Grid {
		for c := range g.Grid[r] {
			g.Grid[r][c].Plant = nil
			g.Grid[r][c].Growth = domain.CellGrowth{Phase: domain.GrowthIdle}
		}
	}
	g.UpdatedAt = now
	return nil
}
