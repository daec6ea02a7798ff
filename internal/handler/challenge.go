package handler

import (
	"net/http"

	"github.com/willowbyte/gardenbloom/internal/challenge"
	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/slot"
)

// ChallengeHandler serves challenge, achievement, and stat views.
type ChallengeHandler struct {
	mgr *slot.Manager
}

// NewChallengeHandler creates a challenge handler.
func NewChallengeHandler(mgr *slot.Manager) *ChallengeHandler {
	return &ChallengeHandler{mgr: mgr}
}

func (h *ChallengeHandler) stateCopy(w http.ResponseWriter, r *http.Request) (*domain.GardenState, bool) {
	sess := h.mgr.Active()
	if sess == nil {
		respondError(w, http.StatusConflict, ErrMsgNoActiveSlotError)
		return nil, false
	}

	state, err := sess.StateCopy()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to snapshot slot state", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return nil, false
	}
	return state, true
}

// HandleChallenges returns the active daily and weekly challenges.
func (h *ChallengeHandler) HandleChallenges(w http.ResponseWriter, r *http.Request) {
	state, ok := h.stateCopy(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: state.Challenges})
}

// AchievementView pairs unlocked keys with the full definition table.
type AchievementView struct {
	Unlocked map[string]bool `json:"unlocked"`
	All      []challenge.Def `json:"all"`
}

// HandleAchievements returns unlock state alongside every definition.
func (h *ChallengeHandler) HandleAchievements(w http.ResponseWriter, r *http.Request) {
	state, ok := h.stateCopy(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: AchievementView{
		Unlocked: state.Achievements.Unlocked,
		All:      challenge.Defs(),
	}})
}

// HandleStats returns the slot's cumulative counters.
func (h *ChallengeHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	state, ok := h.stateCopy(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: state.Stats})
}
