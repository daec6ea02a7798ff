package domain

import "time"

// Grid limits
const (
	DefaultGardenSize = 4
	MaxGardenSize     = 16
)

// Growth stages run 0..MaxGrowthStage; StageValueMultipliers is indexed by stage.
const MaxGrowthStage = 4

// StageValueMultipliers scales a plant's base harvest value by growth stage.
var StageValueMultipliers = [MaxGrowthStage + 1]float64{0.1, 0.3, 0.6, 0.8, 1.0}

// Action cooldowns and growth windows
const (
	WaterCooldown      = 8 * time.Second
	FertilizerCooldown = 12 * time.Second

	WaterGrowthWindow      = 8 * time.Second
	FertilizerGrowthWindow = 12 * time.Second

	// Base time per stage inside a growth window, before the seed's
	// growth-speed multiplier is applied.
	WaterStageInterval      = 2 * time.Second
	FertilizerStageInterval = 1500 * time.Millisecond

	SprinklerStageInterval = 30 * time.Second
)

// Storm damage
const (
	StormDamageInterval = 30 * time.Second
	StormDamageChance   = 0.15
)

// Economy defaults
const (
	StartingMoney      = 100
	StartingWater      = 20
	StartingFertilizer = 10

	BaseExpansionCost       = 150
	ExpansionCostMultiplier = 1.3

	RareRestockChance      = 0.25
	LegendaryRestockChance = 0.12
	RareRestockBoost       = 3
	LegendaryRestockBoost  = 5
)

// Tool levels
const (
	MinToolLevel = 1
	MaxToolLevel = 5

	ToolUpgradeCostMultiplier = 1.5
	HarvestBonusPerLevel      = 0.10
	ResourceBonusPerLevel     = 10
	ShovelRefundPerLevel      = 0.10
)

// Save slots
const (
	MinSlotID = 1
	MaxSlotID = 3
)

// SeasonLengthDays is the number of in-game days per season.
const SeasonLengthDays = 7

// ChatHistoryLimit bounds the retained chat messages.
const ChatHistoryLimit = 100

// CompletedChallengeLimit bounds the completed-challenge history per slot.
const CompletedChallengeLimit = 20
