package domain

import "time"

// Season tags a plant's availability window.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
	SeasonAll    Season = "all"
)

// Seasons is the calendar order used when advancing season days.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

// Next returns the season following s in calendar order.
func (s Season) Next() Season {
	for i, cur := range Seasons {
		if cur == s {
			return Seasons[(i+1)%len(Seasons)]
		}
	}
	return SeasonSpring
}

// Rarity tags a plant's shop restock behaviour.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// PlantType is an immutable catalog descriptor for a seed. Read-only at
// runtime; the loader validates entries once at startup.
type PlantType struct {
	Name             string        `json:"name" yaml:"name"`
	Cost             int           `json:"cost" yaml:"cost"`
	GrowthDuration   time.Duration `json:"growth_duration" yaml:"growth_duration"`
	BaseValue        int           `json:"base_value" yaml:"base_value"`
	Season           Season        `json:"season" yaml:"season"`
	Rarity           Rarity        `json:"rarity" yaml:"rarity"`
	GrowthMultiplier float64       `json:"growth_multiplier" yaml:"growth_multiplier"`
	MaxStock         int           `json:"max_stock" yaml:"max_stock"`
	RestockAmount    int           `json:"restock_amount" yaml:"restock_amount"`
}

// AvailableIn reports whether the seed may be planted during the given season.
func (p PlantType) AvailableIn(season Season) bool {
	return p.Season == SeasonAll || p.Season == season
}

// SprinklerType is an immutable catalog descriptor for a sprinkler.
type SprinklerType struct {
	Name        string        `json:"name" yaml:"name"`
	Cost        int           `json:"cost" yaml:"cost"`
	Radius      int           `json:"radius" yaml:"radius"` // Chebyshev distance
	GrowthBonus float64       `json:"growth_bonus" yaml:"growth_bonus"`
	Efficiency  float64       `json:"efficiency" yaml:"efficiency"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// DecorationCategory groups decoration catalog entries.
type DecorationCategory string

const (
	DecorationPath     DecorationCategory = "path"
	DecorationStatue   DecorationCategory = "statue"
	DecorationFence    DecorationCategory = "fence"
	DecorationSeasonal DecorationCategory = "seasonal"
)

// DecorationType is an immutable catalog descriptor for a decoration. Its
// bonus applies to plants in the 3x3 neighborhood around the placed cell.
type DecorationType struct {
	Name     string             `json:"name" yaml:"name"`
	Cost     int                `json:"cost" yaml:"cost"`
	Category DecorationCategory `json:"category" yaml:"category"`
	Bonus    DecorationBonus    `json:"bonus" yaml:"bonus"`
}

// DecorationBonus describes the neighborhood effect of a decoration.
// Fractions are additive across overlapping decorations.
type DecorationBonus struct {
	Protection      float64 `json:"protection,omitempty" yaml:"protection,omitempty"`
	Growth          float64 `json:"growth,omitempty" yaml:"growth,omitempty"`
	HarvestValue    float64 `json:"harvest_value,omitempty" yaml:"harvest_value,omitempty"`
	WaterEfficiency float64 `json:"water_efficiency,omitempty" yaml:"water_efficiency,omitempty"`
}
