package challenge

import "github.com/willowbyte/gardenbloom/internal/domain"

// Template is one row in the fixed challenge tables.
type Template struct {
	Type        domain.ChallengeType `yaml:"type"`
	Target      int                  `yaml:"target"`
	Description string               `yaml:"description"`
	Reward      int                  `yaml:"reward"`
}

// dailyTemplates are the candidate daily challenges.
var dailyTemplates = []Template{
	{Type: domain.ChallengeHarvest, Target: 5, Description: "Harvest 5 plants", Reward: 40},
	{Type: domain.ChallengePlant, Target: 8, Description: "Plant 8 seeds", Reward: 35},
	{Type: domain.ChallengeWater, Target: 10, Description: "Water plants 10 times", Reward: 30},
	{Type: domain.ChallengeMoney, Target: 100, Description: "Earn 100 coins", Reward: 50},
	{Type: domain.ChallengeHarvest, Target: 3, Description: "Harvest 3 plants", Reward: 25},
	{Type: domain.ChallengeRare, Target: 1, Description: "Harvest a rare plant", Reward: 75},
}

// weeklyTemplates are the candidate weekly challenges.
var weeklyTemplates = []Template{
	{Type: domain.ChallengeHarvest, Target: 40, Description: "Harvest 40 plants this week", Reward: 250},
	{Type: domain.ChallengeMoney, Target: 800, Description: "Earn 800 coins this week", Reward: 300},
	{Type: domain.ChallengePlant, Target: 50, Description: "Plant 50 seeds this week", Reward: 220},
	{Type: domain.ChallengeLegendary, Target: 1, Description: "Harvest a legendary plant", Reward: 500},
	{Type: domain.ChallengeExpansion, Target: 1, Description: "Expand your garden", Reward: 200},
	{Type: domain.ChallengeRare, Target: 5, Description: "Harvest 5 rare plants this week", Reward: 350},
}
