package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/willowbyte/gardenbloom/internal/admin"
	"github.com/willowbyte/gardenbloom/internal/logger"
)

// AdminHandler applies out-of-band state changes to any slot.
type AdminHandler struct {
	dispatcher *admin.Dispatcher
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(dispatcher *admin.Dispatcher) *AdminHandler {
	return &AdminHandler{dispatcher: dispatcher}
}

// AdminCommandRequest is one admin operation with its arguments.
type AdminCommandRequest struct {
	Op   string            `json:"op" validate:"required"`
	Args map[string]string `json:"args,omitempty"`
}

// HandleCommand applies an admin command to the slot in the URL.
func (h *AdminHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	slotID, ok := GetSlotParam(w, chi.URLParam(r, "slotID"))
	if !ok {
		return
	}

	var req AdminCommandRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Admin command"); err != nil {
		return
	}

	cmd := admin.Command{Op: admin.Op(req.Op), Args: req.Args}
	if err := h.dispatcher.Apply(r.Context(), slotID, cmd); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgAdminFailed, "slot", slotID, "op", req.Op, "error", err)
		respondServiceError(w, err)
		return
	}

	logger.FromContext(r.Context()).Info("Admin command applied", "slot", slotID, "op", req.Op)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAdminApplied})
}
