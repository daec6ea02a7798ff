package domain

import "time"

// ChallengeType names the event stream a challenge counts.
type ChallengeType string

const (
	ChallengeHarvest   ChallengeType = "harvest"
	ChallengePlant     ChallengeType = "plant"
	ChallengeWater     ChallengeType = "water"
	ChallengeMoney     ChallengeType = "money"
	ChallengeRare      ChallengeType = "rare"
	ChallengeLegendary ChallengeType = "legendary"
	ChallengeExpansion ChallengeType = "expansion"
)

// ChallengePeriod distinguishes daily from weekly challenges.
type ChallengePeriod string

const (
	PeriodDaily  ChallengePeriod = "daily"
	PeriodWeekly ChallengePeriod = "weekly"
)

// Challenge is one active time-boxed objective. PeriodKey identifies the
// calendar day or ISO week it was generated for, so regeneration is
// idempotent within a period.
type Challenge struct {
	Type        ChallengeType   `json:"type"`
	Period      ChallengePeriod `json:"period"`
	PeriodKey   string          `json:"period_key"`
	Description string          `json:"description"`
	Target      int             `json:"target"`
	Progress    int             `json:"progress"`
	Reward      int             `json:"reward"`
	Completed   bool            `json:"completed"`
	CompletedAt time.Time       `json:"completed_at,omitempty"`
}

// ChallengeState holds the active daily/weekly pair plus bounded history.
type ChallengeState struct {
	Daily     *Challenge  `json:"daily,omitempty"`
	Weekly    *Challenge  `json:"weekly,omitempty"`
	Completed []Challenge `json:"completed,omitempty"`
}

// StatCounters are cumulative per-slot statistics feeding achievements.
type StatCounters struct {
	TotalHarvests      int `json:"total_harvests"`
	TotalPlanted       int `json:"total_planted"`
	TotalWatered       int `json:"total_watered"`
	TotalFertilized    int `json:"total_fertilized"`
	TotalShoveled      int `json:"total_shoveled"`
	MoneyEarned        int `json:"money_earned"`
	RareHarvests       int `json:"rare_harvests"`
	LegendaryHarvests  int `json:"legendary_harvests"`
	Expansions         int `json:"expansions"`
	ChallengesFinished int `json:"challenges_finished"`
	StormsSurvived     int `json:"storms_survived"`
}

// AchievementState maps achievement keys to unlock flags.
type AchievementState struct {
	Unlocked map[string]bool `json:"unlocked,omitempty"`
}

// Unlock marks the achievement unlocked, returning true on first unlock.
func (a *AchievementState) Unlock(key string) bool {
	if a.Unlocked == nil {
		a.Unlocked = make(map[string]bool)
	}
	if a.Unlocked[key] {
		return false
	}
	a.Unlocked[key] = true
	return true
}
