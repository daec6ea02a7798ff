package challenge

import "github.com/willowbyte/gardenbloom/internal/domain"

// Achievement keys
const (
	AchFirstHarvest    = "first_harvest"
	AchGreenThumb      = "green_thumb"       // 50 harvests
	AchMasterGardener  = "master_gardener"   // 250 harvests
	AchSower           = "sower"             // 100 seeds planted
	AchWellWatered     = "well_watered"      // 200 waterings
	AchRareCollector   = "rare_collector"    // 10 rare harvests
	AchLegendaryBloom  = "legendary_bloom"   // 1 legendary harvest
	AchLandBaron       = "land_baron"        // 5 expansions
	AchRichSoil        = "rich_soil"         // 1000 coins earned
	AchChallengeStreak = "challenge_streak"  // 10 challenges finished
	AchStormWeathered  = "storm_weathered"   // 5 storms survived unscathed
)

// thresholds maps achievement keys to the stat extractor and target.
var thresholds = []struct {
	Key    string
	Target int
	Stat   func(domain.StatCounters) int
}{
	{AchFirstHarvest, 1, func(s domain.StatCounters) int { return s.TotalHarvests }},
	{AchGreenThumb, 50, func(s domain.StatCounters) int { return s.TotalHarvests }},
	{AchMasterGardener, 250, func(s domain.StatCounters) int { return s.TotalHarvests }},
	{AchSower, 100, func(s domain.StatCounters) int { return s.TotalPlanted }},
	{AchWellWatered, 200, func(s domain.StatCounters) int { return s.TotalWatered }},
	{AchRareCollector, 10, func(s domain.StatCounters) int { return s.RareHarvests }},
	{AchLegendaryBloom, 1, func(s domain.StatCounters) int { return s.LegendaryHarvests }},
	{AchLandBaron, 5, func(s domain.StatCounters) int { return s.Expansions }},
	{AchRichSoil, 1000, func(s domain.StatCounters) int { return s.MoneyEarned }},
	{AchChallengeStreak, 10, func(s domain.StatCounters) int { return s.ChallengesFinished }},
	{AchStormWeathered, 5, func(s domain.StatCounters) int { return s.StormsSurvived }},
}

// CheckAchievements unlocks any achievement whose stat threshold is now
// met, returning the keys newly unlocked by this call.
func (s *Service) CheckAchievements(g *domain.GardenState) []string {
	var unlocked []string
	for _, t := range thresholds {
		if t.Stat(g.Stats) >= t.Target && g.Achievements.Unlock(t.Key) {
			unlocked = append(unlocked, t.Key)
		}
	}
	return unlocked
}

// Def describes one achievement for display purposes.
type Def struct {
	Key    string `json:"key"`
	Target int    `json:"target"`
}

// Defs returns the full achievement table in definition order.
func Defs() []Def {
	defs := make([]Def, 0, len(thresholds))
	for _, t := range thresholds {
		defs = append(defs, Def{Key: t.Key, Target: t.Target})
	}
	return defs
}
