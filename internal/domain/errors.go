package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Garden action errors
	ErrMsgInsufficientFunds  = "insufficient funds"
	ErrMsgInsufficientWater  = "not enough water"
	ErrMsgInsufficientFert   = "not enough fertilizer"
	ErrMsgOutOfStock         = "out of stock"
	ErrMsgSeasonUnavailable  = "seed not available this season"
	ErrMsgCellOccupied       = "cell is occupied"
	ErrMsgCellEmpty          = "cell has no plant"
	ErrMsgInvalidCoordinates = "invalid coordinates"
	ErrMsgUnknownSeed        = "unknown seed type"
	ErrMsgUnknownSprinkler   = "unknown sprinkler type"
	ErrMsgUnknownDecoration  = "unknown decoration type"
	ErrMsgOnCooldown         = "action on cooldown"

	// Limit errors
	ErrMsgMaxLevel      = "tool already at max level"
	ErrMsgMaxGardenSize = "garden already at max size"

	// Persistence errors
	ErrMsgSlotNotFound = "save slot not found"
	ErrMsgSlotCorrupt  = "save slot record corrupt"
	ErrMsgSlotActive   = "slot is currently active"
	ErrMsgNoActiveSlot = "no slot is active"

	// Sync errors
	ErrMsgNotConnected = "sync client not connected"
	ErrMsgUnknownPeer  = "unknown peer"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Validation errors: caught at the action boundary, no mutation occurs,
// surfaced to the user as a transient message. Never fatal.
var (
	ErrInsufficientFunds  = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientWater  = errors.New(ErrMsgInsufficientWater)
	ErrInsufficientFert   = errors.New(ErrMsgInsufficientFert)
	ErrOutOfStock         = errors.New(ErrMsgOutOfStock)
	ErrSeasonUnavailable  = errors.New(ErrMsgSeasonUnavailable)
	ErrCellOccupied       = errors.New(ErrMsgCellOccupied)
	ErrCellEmpty          = errors.New(ErrMsgCellEmpty)
	ErrInvalidCoordinates = errors.New(ErrMsgInvalidCoordinates)
	ErrUnknownSeed        = errors.New(ErrMsgUnknownSeed)
	ErrUnknownSprinkler   = errors.New(ErrMsgUnknownSprinkler)
	ErrUnknownDecoration  = errors.New(ErrMsgUnknownDecoration)
	ErrMaxLevel           = errors.New(ErrMsgMaxLevel)
	ErrMaxGardenSize      = errors.New(ErrMsgMaxGardenSize)
	ErrInvalidInput       = errors.New(ErrMsgInvalidInput)
)

// Persistence errors: a corrupt record is discarded and the slot
// reinitialized fresh rather than loaded.
var (
	ErrSlotNotFound = errors.New(ErrMsgSlotNotFound)
	ErrSlotCorrupt  = errors.New(ErrMsgSlotCorrupt)
	ErrSlotActive   = errors.New(ErrMsgSlotActive)
	ErrNoActiveSlot = errors.New(ErrMsgNoActiveSlot)
)

// Transport errors: degrade to local-only operation, never block gameplay.
var (
	ErrNotConnected = errors.New(ErrMsgNotConnected)
	ErrUnknownPeer  = errors.New(ErrMsgUnknownPeer)
)

// ValidationErrors lists every error class that aborts an action without
// mutating state. Used by the HTTP layer to map to 400 responses.
var ValidationErrors = []error{
	ErrInsufficientFunds,
	ErrInsufficientWater,
	ErrInsufficientFert,
	ErrOutOfStock,
	ErrSeasonUnavailable,
	ErrCellOccupied,
	ErrCellEmpty,
	ErrInvalidCoordinates,
	ErrUnknownSeed,
	ErrUnknownSprinkler,
	ErrUnknownDecoration,
	ErrMaxLevel,
	ErrMaxGardenSize,
	ErrInvalidInput,
}

// IsValidation reports whether err belongs to the validation taxonomy.
func IsValidation(err error) bool {
	for _, v := range ValidationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	var cd ErrOnCooldown
	return errors.As(err, &cd)
}

// ErrOnCooldown is returned when a per-cell action cooldown has not elapsed.
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	return fmt.Sprintf("%s '%s': %.1fs remaining", ErrMsgOnCooldown, e.Action, e.Remaining.Seconds())
}

// Is allows errors.Is() to work with ErrOnCooldown values.
func (e ErrOnCooldown) Is(target error) bool {
	_, ok := target.(ErrOnCooldown)
	return ok
}
