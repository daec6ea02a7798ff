package catalog

import (
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// DefaultPlants is the built-in seed table used when no config file is
// provided.
func DefaultPlants() []domain.PlantType {
	return []domain.PlantType{
		{Name: "carrot", Cost: 5, GrowthDuration: 40 * time.Second, BaseValue: 8, Season: domain.SeasonAll, Rarity: domain.RarityCommon, GrowthMultiplier: 1.0, MaxStock: 12, RestockAmount: 4},
		{Name: "lettuce", Cost: 4, GrowthDuration: 30 * time.Second, BaseValue: 6, Season: domain.SeasonSpring, Rarity: domain.RarityCommon, GrowthMultiplier: 1.5, MaxStock: 12, RestockAmount: 4},
		{Name: "tomato", Cost: 8, GrowthDuration: 60 * time.Second, BaseValue: 14, Season: domain.SeasonSummer, Rarity: domain.RarityCommon, GrowthMultiplier: 1.0, MaxStock: 10, RestockAmount: 3},
		{Name: "sunflower", Cost: 10, GrowthDuration: 50 * time.Second, BaseValue: 18, Season: domain.SeasonSummer, Rarity: domain.RarityCommon, GrowthMultiplier: 0.8, MaxStock: 8, RestockAmount: 3},
		{Name: "pumpkin", Cost: 15, GrowthDuration: 90 * time.Second, BaseValue: 30, Season: domain.SeasonFall, Rarity: domain.RarityCommon, GrowthMultiplier: 0.5, MaxStock: 8, RestockAmount: 2},
		{Name: "winterberry", Cost: 12, GrowthDuration: 70 * time.Second, BaseValue: 22, Season: domain.SeasonWinter, Rarity: domain.RarityCommon, GrowthMultiplier: 0.7, MaxStock: 8, RestockAmount: 2},
		{Name: "tulip", Cost: 9, GrowthDuration: 45 * time.Second, BaseValue: 16, Season: domain.SeasonSpring, Rarity: domain.RarityCommon, GrowthMultiplier: 1.2, MaxStock: 10, RestockAmount: 3},
		{Name: "golden_rose", Cost: 40, GrowthDuration: 120 * time.Second, BaseValue: 95, Season: domain.SeasonAll, Rarity: domain.RarityRare, GrowthMultiplier: 0.6, MaxStock: 4, RestockAmount: 1},
		{Name: "moonflower", Cost: 55, GrowthDuration: 140 * time.Second, BaseValue: 130, Season: domain.SeasonWinter, Rarity: domain.RarityRare, GrowthMultiplier: 0.5, MaxStock: 4, RestockAmount: 1},
		{Name: "crystal_bloom", Cost: 120, GrowthDuration: 240 * time.Second, BaseValue: 340, Season: domain.SeasonAll, Rarity: domain.RarityLegendary, GrowthMultiplier: 0.5, MaxStock: 2, RestockAmount: 1},
		{Name: "phoenix_lily", Cost: 150, GrowthDuration: 300 * time.Second, BaseValue: 420, Season: domain.SeasonSummer, Rarity: domain.RarityLegendary, GrowthMultiplier: 0.5, MaxStock: 2, RestockAmount: 1},
		{Name: "sprout_burst", Cost: 20, GrowthDuration: 20 * time.Second, BaseValue: 24, Season: domain.SeasonAll, Rarity: domain.RarityCommon, GrowthMultiplier: 4.0, MaxStock: 6, RestockAmount: 2},
	}
}

// DefaultSprinklers is the built-in sprinkler table.
func DefaultSprinklers() []domain.SprinklerType {
	return []domain.SprinklerType{
		{Name: "basic_sprinkler", Cost: 30, Radius: 1, GrowthBonus: 0.10, Efficiency: 0.05, Duration: 2 * time.Minute},
		{Name: "deluxe_sprinkler", Cost: 80, Radius: 2, GrowthBonus: 0.20, Efficiency: 0.10, Duration: 4 * time.Minute},
		{Name: "mega_sprinkler", Cost: 200, Radius: 3, GrowthBonus: 0.35, Efficiency: 0.20, Duration: 6 * time.Minute},
	}
}

// DefaultDecorations is the built-in decoration table.
func DefaultDecorations() []domain.DecorationType {
	return []domain.DecorationType{
		{Name: "stone_path", Cost: 12, Category: domain.DecorationPath, Bonus: domain.DecorationBonus{Growth: 0.05}},
		{Name: "gnome_statue", Cost: 45, Category: domain.DecorationStatue, Bonus: domain.DecorationBonus{HarvestValue: 0.10}},
		{Name: "picket_fence", Cost: 25, Category: domain.DecorationFence, Bonus: domain.DecorationBonus{Protection: 0.05}},
		{Name: "marble_fountain", Cost: 90, Category: domain.DecorationStatue, Bonus: domain.DecorationBonus{WaterEfficiency: 0.15, HarvestValue: 0.05}},
		{Name: "harvest_wreath", Cost: 30, Category: domain.DecorationSeasonal, Bonus: domain.DecorationBonus{HarvestValue: 0.08}},
		{Name: "scarecrow", Cost: 35, Category: domain.DecorationSeasonal, Bonus: domain.DecorationBonus{Protection: 0.10}},
	}
}

// Default returns a catalog built from the built-in tables.
func Default() *Catalog {
	c, err := New(DefaultPlants(), DefaultSprinklers(), DefaultDecorations())
	if err != nil {
		// Built-in tables are validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}
