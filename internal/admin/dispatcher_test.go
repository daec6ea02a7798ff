package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/challenge"
	"github.com/willowbyte/gardenbloom/internal/concurrency"
	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/economy"
	"github.com/willowbyte/gardenbloom/internal/engine"
	"github.com/willowbyte/gardenbloom/internal/garden"
	"github.com/willowbyte/gardenbloom/internal/slot"
	"github.com/willowbyte/gardenbloom/internal/store"
)

type dispatcherFixture struct {
	d   *Dispatcher
	mgr *slot.Manager
	st  *store.Store
	cat *catalog.Catalog
	now time.Time
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat := catalog.Default()
	econ := economy.NewService(cat)
	f := &dispatcherFixture{
		st:  st,
		cat: cat,
		now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	cfg := slot.DefaultConfig()
	cfg.Session.TickInterval = time.Hour
	cfg.Session.AutosaveEvery = time.Hour
	f.mgr = slot.NewManager(st, concurrency.NewLockManager(), cat, engine.New(cat), econ, challenge.NewService(), nil, cfg).
		WithClock(clock)
	f.d = NewDispatcher(f.mgr, st, econ).WithClock(clock)
	return f
}

func (f *dispatcherFixture) seedStored(t *testing.T, slotID int) *domain.GardenState {
	t.Helper()
	state := garden.NewState(slotID, f.cat, f.now)
	require.NoError(t, f.st.Put(context.Background(), store.SlotKey(slotID), state))
	return state
}

func (f *dispatcherFixture) loadStored(t *testing.T, slotID int) *domain.GardenState {
	t.Helper()
	var state domain.GardenState
	require.NoError(t, f.st.Get(context.Background(), store.SlotKey(slotID), &state))
	return &state
}

func TestApplyToStoredSlot(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()
	f.seedStored(t, 2)

	require.NoError(t, f.d.Apply(ctx, 2, Command{Op: OpSetMoney, Args: Args{"amount": "500"}}))

	state := f.loadStored(t, 2)
	assert.Equal(t, 500, state.Resources.Money)

	stamp, err := f.st.GetTime(ctx, store.AdminChangeKey(2))
	require.NoError(t, err)
	assert.True(t, stamp.Equal(f.now), "admin edits stamp the change time")
}

func TestApplyToActiveSlot(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()

	require.NoError(t, f.mgr.Activate(ctx, 1))
	t.Cleanup(func() { f.mgr.Deactivate(ctx) })

	require.NoError(t, f.d.Apply(ctx, 1, Command{Op: OpAddMoney, Args: Args{"amount": "50"}}))

	live, err := f.mgr.Active().StateCopy()
	require.NoError(t, err)
	assert.Equal(t, domain.StartingMoney+50, live.Resources.Money)

	// The live edit is saved through to the store immediately.
	stored := f.loadStored(t, 1)
	assert.Equal(t, domain.StartingMoney+50, stored.Resources.Money)
}

func TestApplyUnknownSlot(t *testing.T) {
	f := newDispatcherFixture(t)
	err := f.d.Apply(context.Background(), 7, Command{Op: OpSetMoney, Args: Args{"amount": "1"}})
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestApplyMissingSave(t *testing.T) {
	f := newDispatcherFixture(t)
	err := f.d.Apply(context.Background(), 3, Command{Op: OpSetMoney, Args: Args{"amount": "1"}})
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestApplyUnknownOp(t *testing.T) {
	f := newDispatcherFixture(t)
	f.seedStored(t, 1)
	err := f.d.Apply(context.Background(), 1, Command{Op: "explode"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetMoneyRejectsNegative(t *testing.T) {
	f := newDispatcherFixture(t)
	f.seedStored(t, 1)
	err := f.d.Apply(context.Background(), 1, Command{Op: OpSetMoney, Args: Args{"amount": "-5"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetMoneyRejectsNonNumeric(t *testing.T) {
	f := newDispatcherFixture(t)
	f.seedStored(t, 1)
	err := f.d.Apply(context.Background(), 1, Command{Op: OpSetMoney, Args: Args{"amount": "lots"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddMoneyCannotGoNegative(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()
	f.seedStored(t, 1)

	err := f.d.Apply(ctx, 1, Command{Op: OpAddMoney, Args: Args{"amount": "-100000"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// A negative delta within the balance is fine.
	require.NoError(t, f.d.Apply(ctx, 1, Command{Op: OpAddMoney, Args: Args{"amount": "-50"}}))
	assert.Equal(t, domain.StartingMoney-50, f.loadStored(t, 1).Resources.Money)
}

func TestSetWeather(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()
	f.seedStored(t, 1)

	require.NoError(t, f.d.Apply(ctx, 1, Command{Op: OpSetWeather, Args: Args{"weather": "stormy"}}))
	state := f.loadStored(t, 1)
	assert.Equal(t, domain.WeatherStormy, state.Weather)
	assert.True(t, state.WeatherSince.Equal(f.now))

	err := f.d.Apply(ctx, 1, Command{Op: OpSetWeather, Args: Args{"weather": "hail"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetSeasonRejectsAll(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()
	f.seedStored(t, 1)

	require.NoError(t, f.d.Apply(ctx, 1, Command{Op: OpSetSeason, Args: Args{"season": "winter"}}))
	state := f.loadStored(t, 1)
	assert.Equal(t, domain.SeasonWinter, state.Season.Season)
	assert.Equal(t, 1, state.Season.Day)

	err := f.d.Apply(ctx, 1, Command{Op: OpSetSeason, Args: Args{"season": "all"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGrowAllAndClearPlants(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()

	state := garden.NewState(1, f.cat, f.now)
	require.NoError(t, garden.NewActions(f.cat).PlantSeed(state, 0, 0, "carrot", f.now))
	require.NoError(t, f.st.Put(ctx, store.SlotKey(1), state))

	require.NoError(t, f.d.Apply(ctx, 1, Command{Op: OpGrowAll}))
	grown := f.loadStored(t, 1)
	require.NotNil(t, grown.CellAt(0, 0).Plant)
	assert.Equal(t, domain.MaxGrowthStage, grown.CellAt(0, 0).Plant.GrowthStage)
	assert.True(t, grown.CellAt(0, 0).Plant.IsFullyGrown)

	require.NoError(t, f.d.Apply(ctx, 1, Command{Op: OpClearPlants}))
	cleared := f.loadStored(t, 1)
	assert.Nil(t, cleared.CellAt(0, 0).Plant)
}

func TestRestockShopCommand(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()

	state := garden.NewState(1, f.cat, f.now)
	state.Shop["carrot"].Stock = 0
	require.NoError(t, f.st.Put(ctx, store.SlotKey(1), state))

	require.NoError(t, f.d.Apply(ctx, 1, Command{Op: OpRestockShop}))
	after := f.loadStored(t, 1)
	assert.Greater(t, after.Shop["carrot"].Stock, 0)
}

func TestApplyMismatchedRecord(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()

	rogue := garden.NewState(2, f.cat, f.now)
	require.NoError(t, f.st.Put(ctx, store.SlotKey(1), rogue))

	err := f.d.Apply(ctx, 1, Command{Op: OpSetMoney, Args: Args{"amount": "1"}})
	assert.ErrorIs(t, err, domain.ErrSlotCorrupt)
}
