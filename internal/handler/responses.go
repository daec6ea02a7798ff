package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/store"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing to do but log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgNoActiveSlotError  = "No save slot is active"
	ErrMsgSlotNotFoundError  = "Save slot not found"
	ErrMsgNotConnectedError  = "Not connected to the garden server"
	ErrMsgUnknownPeerError   = "Unknown friend"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on. Validation errors keep their own text since
// they already speak the player's language.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var cd domain.ErrOnCooldown
	if errors.As(err, &cd) {
		return http.StatusTooManyRequests, cd.Error()
	}

	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNoActiveSlot):
		return http.StatusConflict, ErrMsgNoActiveSlotError
	case errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusNotFound, ErrMsgSlotNotFoundError
	case errors.Is(err, domain.ErrSlotCorrupt):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrNotConnected):
		return http.StatusServiceUnavailable, ErrMsgNotConnectedError
	case errors.Is(err, domain.ErrUnknownPeer):
		return http.StatusBadRequest, ErrMsgUnknownPeerError
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, ErrMsgSlotNotFoundError
	}

	// Short messages pass through; anything else gets the generic text.
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps err and writes the error response.
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}
