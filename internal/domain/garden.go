package domain

import "time"

// GrowthPhase names the active boost on a cell. A cell is Idle unless a
// water or fertilize action opened a bounded growth window; sprinkler
// coverage is tracked separately on the plant because it stacks with both.
type GrowthPhase string

const (
	GrowthIdle        GrowthPhase = "idle"
	GrowthWatering    GrowthPhase = "watering"
	GrowthFertilizing GrowthPhase = "fertilizing"
)

// CellGrowth is the explicit growth state of a cell. StartedAt is the
// beginning of the current window; LastAdvance is when the plant last
// gained a stage from this window.
type CellGrowth struct {
	Phase       GrowthPhase `json:"phase"`
	StartedAt   time.Time   `json:"started_at,omitempty"`
	LastAdvance time.Time   `json:"last_advance,omitempty"`
}

// Idle reports whether no growth window is open.
func (g CellGrowth) Idle() bool { return g.Phase == GrowthIdle || g.Phase == "" }

// PlantBonuses accumulates effects applied by nearby decorations.
type PlantBonuses struct {
	Protection      float64 `json:"protection,omitempty"`
	Growth          float64 `json:"growth,omitempty"`
	HarvestValue    float64 `json:"harvest_value,omitempty"`
	WaterEfficiency float64 `json:"water_efficiency,omitempty"`
}

// Plant is a growing plant occupying one cell.
type Plant struct {
	TypeName         string       `json:"type_name"`
	PlantedAt        time.Time    `json:"planted_at"`
	GrowthStage      int          `json:"growth_stage"`
	IsFullyGrown     bool         `json:"is_fully_grown"`
	RecentlyDamaged  bool         `json:"recently_damaged,omitempty"`
	LastSprinklerAdv time.Time    `json:"last_sprinkler_adv,omitempty"`
	Bonuses          PlantBonuses `json:"bonuses,omitempty"`
}

// Decoration occupies a cell and grants its type's bonus to the 3x3
// neighborhood around it.
type Decoration struct {
	TypeName string    `json:"type_name"`
	PlacedAt time.Time `json:"placed_at"`
}

// Cell is one grid position. A cell with a plant cannot host a sprinkler;
// sprinklers live in GardenState.Sprinklers keyed by position.
type Cell struct {
	Plant                *Plant     `json:"plant,omitempty"`
	Decoration           *Decoration `json:"decoration,omitempty"`
	Growth               CellGrowth `json:"growth"`
	WaterCooldownUntil   time.Time  `json:"water_cooldown_until,omitempty"`
	FertilizeCooldownUntil time.Time `json:"fertilize_cooldown_until,omitempty"`
}

// Sprinkler is a placed, time-boxed area effect.
type Sprinkler struct {
	TypeName  string    `json:"type_name"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	PlacedAt  time.Time `json:"placed_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the sprinkler should be removed.
func (s Sprinkler) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// Covers reports whether (row, col) is within the sprinkler's radius
// (Chebyshev distance).
func (s Sprinkler) Covers(row, col, radius int) bool {
	dr := row - s.Row
	if dr < 0 {
		dr = -dr
	}
	dc := col - s.Col
	if dc < 0 {
		dc = -dc
	}
	if dc > dr {
		dr = dc
	}
	return dr <= radius
}

// Weather is the current sky state affecting growth and storm damage.
type Weather string

const (
	WeatherSunny  Weather = "sunny"
	WeatherRainy  Weather = "rainy"
	WeatherCloudy Weather = "cloudy"
	WeatherStormy Weather = "stormy"
)

// GrowthMultiplier returns the weather's scaling on stage-advance intervals.
func (w Weather) GrowthMultiplier() float64 {
	switch w {
	case WeatherRainy:
		return 1.2
	case WeatherCloudy:
		return 0.9
	case WeatherStormy:
		return 0.8
	default:
		return 1.0
	}
}

// ShopEntry is the per-seed shop inventory for one slot.
type ShopEntry struct {
	Stock         int `json:"stock"`
	MaxStock      int `json:"max_stock"`
	RestockAmount int `json:"restock_amount"`
}

// ToolKind names an upgradable tool.
type ToolKind string

const (
	ToolWater      ToolKind = "water"
	ToolFertilizer ToolKind = "fertilizer"
	ToolShovel     ToolKind = "shovel"
	ToolHarvest    ToolKind = "harvest"
)

// ToolKinds lists all upgradable tools.
var ToolKinds = []ToolKind{ToolWater, ToolFertilizer, ToolShovel, ToolHarvest}

// Tool tracks one tool's level and the cost of its next upgrade.
type Tool struct {
	Level       int `json:"level"`
	UpgradeCost int `json:"upgrade_cost"`
}

// Resources are the spendable counters of one slot.
type Resources struct {
	Money      int `json:"money"`
	Water      int `json:"water"`
	Fertilizer int `json:"fertilizer"`
	Score      int `json:"score"`
}

// SeasonState tracks the in-game calendar for one slot.
type SeasonState struct {
	Season     Season    `json:"season"`
	Day        int       `json:"day"`
	Multiplier float64   `json:"multiplier"`
	LastDayAt  time.Time `json:"last_day_at"`
}

// Particle is transient UI state. Never persisted.
type Particle struct {
	Kind string  `json:"kind"`
	Row  int     `json:"row"`
	Col  int     `json:"col"`
	TTL  float64 `json:"ttl"`
}

// GardenState is the full state of one save slot. Owned exclusively by the
// slot; never shared between slots.
type GardenState struct {
	SlotID    int       `json:"slot_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Resources  Resources `json:"resources"`
	GardenSize int       `json:"garden_size"`
	Grid       [][]Cell  `json:"grid"`

	Sprinklers         []Sprinkler    `json:"sprinklers"`
	SprinklerInventory map[string]int `json:"sprinkler_inventory"`

	Shop          map[string]*ShopEntry `json:"shop"`
	LastRestockAt time.Time             `json:"last_restock_at"`

	Tools map[ToolKind]*Tool `json:"tools"`

	Weather       Weather   `json:"weather"`
	WeatherSince  time.Time `json:"weather_since"`
	LastStormRoll time.Time `json:"last_storm_roll,omitempty"`

	Season SeasonState `json:"season"`

	ExpansionCost int `json:"expansion_cost"`

	Challenges   ChallengeState   `json:"challenges"`
	Achievements AchievementState `json:"achievements"`
	Stats        StatCounters     `json:"stats"`

	// Particles are transient render state and excluded from saves.
	Particles []Particle `json:"-"`
}

// CellAt returns the cell at (row, col), or nil when out of bounds.
func (g *GardenState) CellAt(row, col int) *Cell {
	if row < 0 || col < 0 || row >= g.GardenSize || col >= g.GardenSize {
		return nil
	}
	return &g.Grid[row][col]
}

// SprinklerAt returns the index of the sprinkler at (row, col), or -1.
func (g *GardenState) SprinklerAt(row, col int) int {
	for i := range g.Sprinklers {
		if g.Sprinklers[i].Row == row && g.Sprinklers[i].Col == col {
			return i
		}
	}
	return -1
}
