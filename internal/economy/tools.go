package economy

import (
	"fmt"
	"math"
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Water and fertilizer refill pricing.
const (
	WaterRefillCost        = 10
	WaterRefillAmount      = 10
	FertilizerRefillCost   = 15
	FertilizerRefillAmount = 8
)

// BuyWater exchanges money for a water refill.
func (s *Service) BuyWater(g *domain.GardenState, now time.Time) error {
	if g.Resources.Money < WaterRefillCost {
		return fmt.Errorf("%w: need %d", domain.ErrInsufficientFunds, WaterRefillCost)
	}
	g.Resources.Money -= WaterRefillCost
	g.Resources.Water += WaterRefillAmount + resourceBonus(g, domain.ToolWater)
	g.UpdatedAt = now
	return nil
}

// BuyFertilizer exchanges money for a fertilizer refill.
func (s *Service) BuyFertilizer(g *domain.GardenState, now time.Time) error {
	if g.Resources.Money < FertilizerRefillCost {
		return fmt.Errorf("%w: need %d", domain.ErrInsufficientFunds, FertilizerRefillCost)
	}
	g.Resources.Money -= FertilizerRefillCost
	g.Resources.Fertilizer += FertilizerRefillAmount + resourceBonus(g, domain.ToolFertilizer)
	g.UpdatedAt = now
	return nil
}

// resourceBonus grants extra refill per tool level above base.
func resourceBonus(g *domain.GardenState, kind domain.ToolKind) int {
	t, ok := g.Tools[kind]
	if !ok {
		return 0
	}
	return (t.Level - domain.MinToolLevel) * 2
}

// UpgradeTool raises the tool one level, charging its current upgrade cost
// and escalating the next one x1.5. Water and fertilizer upgrades grant an
// immediate resource bump; the harvest tool's +10%-per-level bonus is
// applied at harvest time.
func (s *Service) UpgradeTool(g *domain.GardenState, kind domain.ToolKind, now time.Time) error {
	tool, ok := g.Tools[kind]
	if !ok {
		return fmt.Errorf("%w: tool %q", domain.ErrInvalidInput, kind)
	}
	if tool.Level >= domain.MaxToolLevel {
		return fmt.Errorf("%w: %q", domain.ErrMaxLevel, kind)
	}
	if g.Resources.Money < tool.UpgradeCost {
		return fmt.Errorf("%w: need %d", domain.ErrInsufficientFunds, tool.UpgradeCost)
	}

	g.Resources.Money -= tool.UpgradeCost
	tool.Level++
	tool.UpgradeCost = int(math.Floor(float64(tool.UpgradeCost) * domain.ToolUpgradeCostMultiplier))

	// Immediate bump on upgrade.
	switch kind {
	case domain.ToolWater:
		g.Resources.Water += domain.ResourceBonusPerLevel
	case domain.ToolFertilizer:
		g.Resources.Fertilizer += domain.ResourceBonusPerLevel
	}

	g.UpdatedAt = now
	return nil
}
