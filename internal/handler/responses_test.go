package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/store"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"no active slot", domain.ErrNoActiveSlot, http.StatusConflict, ErrMsgNoActiveSlotError},
		{"slot not found", domain.ErrSlotNotFound, http.StatusNotFound, ErrMsgSlotNotFoundError},
		{"slot corrupt", domain.ErrSlotCorrupt, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"not connected", domain.ErrNotConnected, http.StatusServiceUnavailable, ErrMsgNotConnectedError},
		{"unknown peer", domain.ErrUnknownPeer, http.StatusBadRequest, ErrMsgUnknownPeerError},
		{"store miss", store.ErrNotFound, http.StatusNotFound, ErrMsgSlotNotFoundError},
		{"validation", domain.ErrInsufficientFunds, http.StatusBadRequest, domain.ErrInsufficientFunds.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestMapServiceErrorWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("planting"), domain.ErrNoActiveSlot)
	status, msg := mapServiceErrorToUserMessage(wrapped)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, ErrMsgNoActiveSlotError, msg)
}

func TestMapServiceErrorCooldown(t *testing.T) {
	err := domain.ErrOnCooldown{Action: "water", Remaining: 5 * time.Second}
	status, msg := mapServiceErrorToUserMessage(err)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Contains(t, msg, "water")
}
