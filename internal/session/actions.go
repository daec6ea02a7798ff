package session

import (
	"context"
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/event"
	"github.com/willowbyte/gardenbloom/internal/garden"
	"github.com/willowbyte/gardenbloom/internal/metrics"
)

// progress is a challenge counter delta produced by a player action.
type progress struct {
	typ    domain.ChallengeType
	amount int
}

// afterAction runs challenge/achievement bookkeeping under the lock the
// caller already holds, then returns the events to publish once the lock
// is released.
func (s *Session) afterAction(deltas []progress, now time.Time) []event.Event {
	var events []event.Event
	for _, d := range deltas {
		for _, done := range s.chal.Apply(s.state, d.typ, d.amount, now) {
			events = append(events, event.NewChallengeCompletedEvent(s.slotID, done))
		}
	}
	for _, key := range s.chal.CheckAchievements(s.state) {
		events = append(events, event.NewAchievementEvent(s.slotID, key))
	}
	return events
}

func (s *Session) publishAll(ctx context.Context, events []event.Event) {
	for _, evt := range events {
		s.publish(ctx, evt)
	}
}

// PlantSeed plants seedType at (row, col).
func (s *Session) PlantSeed(ctx context.Context, row, col int, seedType string) error {
	now := s.clock()
	s.mu.Lock()
	err := s.actions.PlantSeed(s.state, row, col, seedType, now)
	var events []event.Event
	if err == nil {
		events = append(events, event.NewPlantedEvent(s.slotID, seedType, row, col))
		events = append(events, s.afterAction([]progress{{domain.ChallengePlant, 1}}, now)...)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	metrics.ActionsTotal.WithLabelValues("plant").Inc()
	s.publishAll(ctx, events)
	return nil
}

// Water opens a watering growth window at (row, col).
func (s *Session) Water(ctx context.Context, row, col int) error {
	now := s.clock()
	s.mu.Lock()
	err := s.actions.Water(s.state, row, col, now)
	var events []event.Event
	if err == nil {
		events = s.afterAction([]progress{{domain.ChallengeWater, 1}}, now)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	metrics.ActionsTotal.WithLabelValues("water").Inc()
	s.publishAll(ctx, events)
	return nil
}

// Fertilize opens a fertilizing growth window at (row, col).
func (s *Session) Fertilize(ctx context.Context, row, col int) error {
	now := s.clock()
	s.mu.Lock()
	err := s.actions.Fertilize(s.state, row, col, now)
	var events []event.Event
	if err == nil {
		events = s.afterAction(nil, now)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	metrics.ActionsTotal.WithLabelValues("fertilize").Inc()
	s.publishAll(ctx, events)
	return nil
}

// Harvest collects the plant at (row, col) and returns the proceeds.
func (s *Session) Harvest(ctx context.Context, row, col int) (*garden.HarvestResult, error) {
	now := s.clock()
	s.mu.Lock()
	res, err := s.actions.Harvest(s.state, row, col, now)
	var events []event.Event
	if err == nil {
		events = append(events, event.NewHarvestedEvent(s.slotID, res.Seed, res.Stage, res.Value))
		deltas := []progress{
			{domain.ChallengeHarvest, 1},
			{domain.ChallengeMoney, res.Value},
		}
		switch res.Seed.Rarity {
		case domain.RarityRare:
			deltas = append(deltas, progress{domain.ChallengeRare, 1})
		case domain.RarityLegendary:
			deltas = append(deltas, progress{domain.ChallengeLegendary, 1})
		}
		events = append(events, s.afterAction(deltas, now)...)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	metrics.ActionsTotal.WithLabelValues("harvest").Inc()
	metrics.HarvestValue.Observe(float64(res.Value))
	s.publishAll(ctx, events)
	return res, nil
}

// Shovel digs up the plant at (row, col), returning any seed-cost refund.
func (s *Session) Shovel(ctx context.Context, row, col int) (int, error) {
	now := s.clock()
	s.mu.Lock()
	refund, err := s.actions.Shovel(s.state, row, col, now)
	var events []event.Event
	if err == nil {
		events = s.afterAction(nil, now)
	}
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	metrics.ActionsTotal.WithLabelValues("shovel").Inc()
	s.publishAll(ctx, events)
	return refund, nil
}

// Expand grows the garden grid by one row and column.
func (s *Session) Expand(ctx context.Context) error {
	now := s.clock()
	s.mu.Lock()
	err := s.actions.Expand(s.state, now)
	var events []event.Event
	if err == nil {
		events = s.afterAction([]progress{{domain.ChallengeExpansion, 1}}, now)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	metrics.ActionsTotal.WithLabelValues("expand").Inc()
	s.publishAll(ctx, events)
	return nil
}

// BuySprinkler purchases a sprinkler into the inventory.
func (s *Session) BuySprinkler(ctx context.Context, typeName string) error {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions.BuySprinkler(s.state, typeName, now)
}

// PlaceSprinkler places an inventory sprinkler at (row, col).
func (s *Session) PlaceSprinkler(ctx context.Context, row, col int, typeName string) error {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions.PlaceSprinkler(s.state, row, col, typeName, now)
}

// PickUpSprinkler returns the sprinkler at (row, col) to the inventory.
func (s *Session) PickUpSprinkler(ctx context.Context, row, col int) error {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions.PickUpSprinkler(s.state, row, col, now)
}

// PlaceDecoration places a decoration at (row, col).
func (s *Session) PlaceDecoration(ctx context.Context, row, col int, typeName string) error {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions.PlaceDecoration(s.state, row, col, typeName, now)
}

// RemoveDecoration removes the decoration at (row, col). No refund.
func (s *Session) RemoveDecoration(ctx context.Context, row, col int) error {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions.RemoveDecoration(s.state, row, col, now)
}

// BuyWater purchases a water refill.
func (s *Session) BuyWater(ctx context.Context) error {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.econ.BuyWater(s.state, now)
}

// BuyFertilizer purchases a fertilizer refill.
func (s *Session) BuyFertilizer(ctx context.Context) error {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.econ.BuyFertilizer(s.state, now)
}

// UpgradeTool upgrades the named tool one level.
func (s *Session) UpgradeTool(ctx context.Context, kind domain.ToolKind) error {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.econ.UpgradeTool(s.state, kind, now)
}
