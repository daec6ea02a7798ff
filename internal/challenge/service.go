package challenge

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Service generates and tracks daily/weekly challenges. Generation is
// keyed to the calendar day and ISO week, so re-running it within the same
// period is a no-op and every slot regenerates the same pair independently.
type Service struct{}

// NewService creates the challenge tracker.
func NewService() *Service {
	return &Service{}
}

// DayKey returns the generation key for daily challenges.
func DayKey(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// WeekKey returns the generation key for weekly challenges.
func WeekKey(now time.Time) string {
	year, week := now.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// EnsureCurrent regenerates any challenge whose period rolled over.
// Returns true when a new challenge was issued.
func (s *Service) EnsureCurrent(g *domain.GardenState, now time.Time) bool {
	changed := false

	if dayKey := DayKey(now); g.Challenges.Daily == nil || g.Challenges.Daily.PeriodKey != dayKey {
		g.Challenges.Daily = generate(dailyTemplates, domain.PeriodDaily, dayKey)
		changed = true
	}
	if weekKey := WeekKey(now); g.Challenges.Weekly == nil || g.Challenges.Weekly.PeriodKey != weekKey {
		g.Challenges.Weekly = generate(weeklyTemplates, domain.PeriodWeekly, weekKey)
		changed = true
	}
	return changed
}

// generate deterministically picks a template for the period key.
func generate(templates []Template, period domain.ChallengePeriod, key string) *domain.Challenge {
	h := fnv.New32a()
	h.Write([]byte(string(period)))
	h.Write([]byte(key))
	tpl := templates[int(h.Sum32())%len(templates)]
	return &domain.Challenge{
		Type:        tpl.Type,
		Period:      period,
		PeriodKey:   key,
		Description: tpl.Description,
		Target:      tpl.Target,
		Reward:      tpl.Reward,
	}
}

// Apply accumulates progress of the given type on both active challenges
// and returns any challenge completed by this event. Completion pays the
// reward into money and appends to the bounded history.
func (s *Service) Apply(g *domain.GardenState, typ domain.ChallengeType, amount int, now time.Time) []domain.Challenge {
	if amount <= 0 {
		return nil
	}

	var completed []domain.Challenge
	for _, ch := range []*domain.Challenge{g.Challenges.Daily, g.Challenges.Weekly} {
		if ch == nil || ch.Completed || ch.Type != typ {
			continue
		}
		ch.Progress += amount
		if ch.Progress < ch.Target {
			continue
		}
		ch.Progress = ch.Target
		ch.Completed = true
		ch.CompletedAt = now
		g.Resources.Money += ch.Reward
		g.Stats.ChallengesFinished++

		g.Challenges.Completed = append(g.Challenges.Completed, *ch)
		if len(g.Challenges.Completed) > domain.CompletedChallengeLimit {
			g.Challenges.Completed = g.Challenges.Completed[len(g.Challenges.Completed)-domain.CompletedChallengeLimit:]
		}
		completed = append(completed, *ch)
	}
	if len(completed) > 0 {
		g.UpdatedAt = now
	}
	return completed
}
