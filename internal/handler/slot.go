package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/slot"
)

// SlotHandler serves the save-slot lifecycle endpoints.
type SlotHandler struct {
	mgr *slot.Manager
}

// NewSlotHandler creates a slot handler.
func NewSlotHandler(mgr *slot.Manager) *SlotHandler {
	return &SlotHandler{mgr: mgr}
}

// HandleList returns the slot picker view.
func (h *SlotHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.mgr.Summaries(r.Context())})
}

// HandleActivate switches play to the slot in the URL.
func (h *SlotHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	slotID, ok := GetSlotParam(w, chi.URLParam(r, "slotID"))
	if !ok {
		return
	}

	if err := h.mgr.Activate(r.Context(), slotID); err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgActivateFailed, "slot", slotID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSlotActivated})
}

// HandleDeactivate stops the active slot and saves it.
func (h *SlotHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.Deactivate(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgSaveFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSlotDeactivated})
}

// HandleReset wipes the slot back to a fresh garden.
func (h *SlotHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	slotID, ok := GetSlotParam(w, chi.URLParam(r, "slotID"))
	if !ok {
		return
	}

	if err := h.mgr.Reset(r.Context(), slotID); err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgResetFailed, "slot", slotID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSlotReset})
}

// HandleSave persists the active slot immediately.
func (h *SlotHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.SaveActive(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgSaveFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSaved})
}
