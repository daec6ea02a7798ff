package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/challenge"
	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/economy"
	"github.com/willowbyte/gardenbloom/internal/engine"
	"github.com/willowbyte/gardenbloom/internal/garden"
)

type fixture struct {
	sess  *Session
	now   time.Time
	saves int
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func newFixture(t *testing.T, save SaveFunc) *fixture {
	t.Helper()
	cat := catalog.Default()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	f := &fixture{now: now}
	if save == nil {
		save = func(ctx context.Context, state *domain.GardenState) error {
			f.saves++
			return nil
		}
	}

	state := garden.NewState(1, cat, now)
	sess := New(state, cat, engine.New(cat), economy.NewService(cat), challenge.NewService(), nil, save, Config{
		TickInterval:  time.Hour,
		AutosaveEvery: time.Hour,
	})
	sess.WithClock(func() time.Time { return f.now })
	f.sess = sess
	return f
}

func TestPlantSeedThroughSession(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.sess.PlantSeed(ctx, 0, 0, "carrot"))

	state, err := f.sess.StateCopy()
	require.NoError(t, err)
	assert.Equal(t, domain.StartingMoney-5, state.Resources.Money)
	assert.Equal(t, 1, state.Stats.TotalPlanted)
	require.NotNil(t, state.CellAt(0, 0).Plant)
}

func TestActionErrorsPropagate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	err := f.sess.PlantSeed(ctx, 99, 99, "carrot")
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)

	err = f.sess.Water(ctx, 0, 0)
	assert.ErrorIs(t, err, domain.ErrCellEmpty)
}

func TestHarvestAppliesChallengeProgress(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	// Issue challenges first, then swap in a known harvest objective.
	f.sess.tick(ctx)
	require.NoError(t, f.sess.Mutate(func(g *domain.GardenState) error {
		g.Challenges.Daily = &domain.Challenge{
			Type:      domain.ChallengeHarvest,
			Period:    domain.PeriodDaily,
			PeriodKey: challenge.DayKey(f.now),
			Target:    1,
			Reward:    40,
		}
		g.Challenges.Weekly = nil
		return nil
	}))

	require.NoError(t, f.sess.PlantSeed(ctx, 0, 0, "carrot"))
	_, err := f.sess.Harvest(ctx, 0, 0)
	require.NoError(t, err)

	state, err := f.sess.StateCopy()
	require.NoError(t, err)
	assert.True(t, state.Challenges.Daily.Completed)
	assert.True(t, state.Achievements.Unlocked[challenge.AchFirstHarvest])
}

func TestTickIssuesChallengesAndRestocks(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.sess.tick(ctx)

	state, err := f.sess.StateCopy()
	require.NoError(t, err)
	require.NotNil(t, state.Challenges.Daily)
	require.NotNil(t, state.Challenges.Weekly)
}

func TestSaveNowUsesHook(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.sess.SaveNow(context.Background()))
	assert.Equal(t, 1, f.saves)
}

func TestSaveNowNilHookIsNoop(t *testing.T) {
	f := newFixture(t, func(ctx context.Context, state *domain.GardenState) error {
		t.Fatal("should not be called")
		return nil
	})
	f.sess.save = nil

	assert.NoError(t, f.sess.SaveNow(context.Background()))
}

func TestStateCopyIsDeep(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.sess.PlantSeed(ctx, 0, 0, "carrot"))

	copy1, err := f.sess.StateCopy()
	require.NoError(t, err)
	copy1.Resources.Money = 0
	copy1.CellAt(0, 0).Plant = nil

	copy2, err := f.sess.StateCopy()
	require.NoError(t, err)
	assert.Equal(t, domain.StartingMoney-5, copy2.Resources.Money)
	assert.NotNil(t, copy2.CellAt(0, 0).Plant)
}

func TestStartStopLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	assert.False(t, f.sess.Running())

	f.sess.Start(ctx)
	assert.True(t, f.sess.Running())
	f.sess.Start(ctx) // idempotent

	f.sess.Stop()
	assert.False(t, f.sess.Running())
	f.sess.Stop() // idempotent
}

func TestTickRecoversFromPanic(t *testing.T) {
	f := newFixture(t, nil)
	f.sess.eng = nil // nil engine makes the tick panic

	assert.NotPanics(t, func() { f.sess.tick(context.Background()) })
	assert.Equal(t, 1, f.saves, "recovery attempts a save")
}

func TestSnapshotReflectsState(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.sess.PlantSeed(ctx, 1, 1, "carrot"))

	snap := f.sess.Snapshot()
	assert.Equal(t, 1, snap.SlotID)
	assert.Equal(t, domain.StartingMoney-5, snap.Money)
}

func TestTickPanicReleasesStateLock(t *testing.T) {
	f := newFixture(t, nil)
	f.sess.eng = nil

	assert.NotPanics(t, func() { f.sess.tick(context.Background()) })

	// The state mutex must be free again or this would hang.
	_, err := f.sess.StateCopy()
	assert.NoError(t, err)
}

func TestFailedRecoverySaveStopsSession(t *testing.T) {
	f := newFixture(t, func(ctx context.Context, state *domain.GardenState) error {
		return assert.AnError
	})
	ctx := context.Background()

	f.sess.Start(ctx)
	require.True(t, f.sess.Running())

	f.sess.eng = nil
	assert.NotPanics(t, func() { f.sess.tick(ctx) })

	assert.False(t, f.sess.Running())
	f.sess.Stop() // must not hang on the already-signalled loop
}

func TestShovelThroughSession(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.sess.PlantSeed(ctx, 0, 0, "carrot"))

	refund, err := f.sess.Shovel(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, refund)

	state, err := f.sess.StateCopy()
	require.NoError(t, err)
	assert.Nil(t, state.CellAt(0, 0).Plant)
	assert.Equal(t, 1, state.Stats.TotalShoveled)
}
