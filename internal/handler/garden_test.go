package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/challenge"
	"github.com/willowbyte/gardenbloom/internal/concurrency"
	"github.com/willowbyte/gardenbloom/internal/economy"
	"github.com/willowbyte/gardenbloom/internal/engine"
	"github.com/willowbyte/gardenbloom/internal/slot"
	"github.com/willowbyte/gardenbloom/internal/store"
)

// newTestRouter wires a real slot manager behind the garden, shop, and
// slot handlers, backed by an in-memory store.
func newTestRouter(t *testing.T) (*chi.Mux, *slot.Manager) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat := catalog.Default()
	cfg := slot.DefaultConfig()
	cfg.Session.TickInterval = time.Hour
	cfg.Session.AutosaveEvery = time.Hour
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mgr := slot.NewManager(st, concurrency.NewLockManager(), cat, engine.New(cat), economy.NewService(cat), challenge.NewService(), nil, cfg).
		WithClock(func() time.Time { return now })
	t.Cleanup(func() { mgr.Deactivate(context.Background()) })

	gardenH := NewGardenHandler(mgr)
	shopH := NewShopHandler(mgr, cat)
	slotH := NewSlotHandler(mgr)

	r := chi.NewRouter()
	r.Get("/slots", slotH.HandleList)
	r.Post("/slots/{slotID}/activate", slotH.HandleActivate)
	r.Post("/slots/{slotID}/reset", slotH.HandleReset)
	r.Post("/slots/deactivate", slotH.HandleDeactivate)
	r.Post("/slots/save", slotH.HandleSave)
	r.Get("/garden", gardenH.HandleView)
	r.Post("/garden/plant", gardenH.HandlePlant)
	r.Post("/garden/water", gardenH.HandleWater)
	r.Post("/garden/harvest", gardenH.HandleHarvest)
	r.Post("/garden/shovel", gardenH.HandleShovel)
	r.Get("/shop", shopH.HandleView)
	return r, mgr
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGardenEndpointsRequireActiveSlot(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/garden", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgNoActiveSlotError, resp.Error)
}

func TestActivateAndPlantFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/slots/1/activate", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/garden/plant", `{"row":0,"col":0,"seed":"carrot"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, MsgPlanted, resp.Message)

	w = doJSON(t, r, http.MethodGet, "/garden", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"carrot"`)
}

func TestPlantValidationErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/slots/1/activate", "")

	w := doJSON(t, r, http.MethodPost, "/garden/plant", `{"row":-1,"col":0,"seed":"carrot"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "row")

	w = doJSON(t, r, http.MethodPost, "/garden/plant", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlantDomainErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/slots/1/activate", "")

	// Out-of-season seed is a validation failure, not a server error.
	w := doJSON(t, r, http.MethodPost, "/garden/plant", `{"row":0,"col":0,"seed":"tomato"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown seed likewise.
	w = doJSON(t, r, http.MethodPost, "/garden/plant", `{"row":0,"col":0,"seed":"kudzu"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWaterCooldownMapsTo429(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/slots/1/activate", "")
	doJSON(t, r, http.MethodPost, "/garden/plant", `{"row":0,"col":0,"seed":"carrot"}`)

	w := doJSON(t, r, http.MethodPost, "/garden/water", `{"row":0,"col":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/garden/water", `{"row":0,"col":0}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestHarvestReturnsProceeds(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/slots/1/activate", "")
	doJSON(t, r, http.MethodPost, "/garden/plant", `{"row":0,"col":0,"seed":"carrot"}`)

	w := doJSON(t, r, http.MethodPost, "/garden/harvest", `{"row":0,"col":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var hr HarvestResponse
	require.NoError(t, json.Unmarshal(data, &hr))
	assert.Equal(t, "carrot", hr.Seed)
	assert.False(t, hr.FullyGrown)
}

func TestSlotLifecycleEndpoints(t *testing.T) {
	r, mgr := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/slots", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/slots/9/activate", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/slots/2/activate", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, mgr.ActiveSlotID())

	w = doJSON(t, r, http.MethodPost, "/slots/save", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/slots/2/reset", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/slots/deactivate", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, mgr.ActiveSlotID())

	// Saving with nothing active conflicts.
	w = doJSON(t, r, http.MethodPost, "/slots/save", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestShopView(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/slots/1/activate", "")

	w := doJSON(t, r, http.MethodGet, "/shop", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"carrot"`)
	assert.Contains(t, w.Body.String(), `"water"`)
}

func TestShovelClearsPlantedCell(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/slots/1/activate", "")
	doJSON(t, r, http.MethodPost, "/garden/plant", `{"row":0,"col":0,"seed":"carrot"}`)

	w := doJSON(t, r, http.MethodPost, "/garden/shovel", `{"row":0,"col":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var sr ShovelResponse
	require.NoError(t, json.Unmarshal(data, &sr))
	assert.Equal(t, 0, sr.Refund)

	// Shovelling the now-empty cell is rejected.
	w = doJSON(t, r, http.MethodPost, "/garden/shovel", `{"row":0,"col":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
