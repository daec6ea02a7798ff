package garden

import (
	"time"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Base upgrade costs per tool, escalated x1.5 after each upgrade.
var baseUpgradeCosts = map[domain.ToolKind]int{
	domain.ToolWater:      50,
	domain.ToolFertilizer: 60,
	domain.ToolShovel:     40,
	domain.ToolHarvest:    80,
}

// NewState builds a fresh GardenState for the given slot.
func NewState(slotID int, cat *catalog.Catalog, now time.Time) *domain.GardenState {
	size := domain.DefaultGardenSize
	grid := make([][]domain.Cell, size)
	for i := range grid {
		grid[i] = make([]domain.Cell, size)
	}

	shop := make(map[string]*domain.ShopEntry)
	for _, p := range cat.Plants() {
		shop[p.Name] = &domain.ShopEntry{
			Stock:         p.MaxStock,
			MaxStock:      p.MaxStock,
			RestockAmount: p.RestockAmount,
		}
	}

	tools := make(map[domain.ToolKind]*domain.Tool, len(domain.ToolKinds))
	for _, kind := range domain.ToolKinds {
		tools[kind] = &domain.Tool{
			Level:       domain.MinToolLevel,
			UpgradeCost: baseUpgradeCosts[kind],
		}
	}

	return &domain.GardenState{
		SlotID:    slotID,
		CreatedAt: now,
		UpdatedAt: now,
		Resources: domain.Resources{
			Money:      domain.StartingMoney,
			Water:      domain.StartingWater,
			Fertilizer: domain.StartingFertilizer,
		},
		GardenSize:         size,
		Grid:               grid,
		SprinklerInventory: make(map[string]int),
		Shop:               shop,
		LastRestockAt:      now,
		Tools:              tools,
		Weather:            domain.WeatherSunny,
		WeatherSince:       now,
		Season: domain.SeasonState{
			Season:     domain.SeasonSpring,
			Day:        1,
			Multiplier: 1.0,
			LastDayAt:  now,
		},
		ExpansionCost: domain.BaseExpansionCost,
	}
}
