package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidSlotParam  = "Invalid slot parameter"

	// Slot operation error messages
	ErrMsgActivateFailed = "Failed to activate slot"
	ErrMsgSaveFailed     = "Failed to save"
	ErrMsgResetFailed    = "Failed to reset slot"

	// Garden operation error messages
	ErrMsgPlantFailed     = "Failed to plant seed"
	ErrMsgWaterFailed     = "Failed to water"
	ErrMsgFertilizeFailed = "Failed to fertilize"
	ErrMsgHarvestFailed   = "Failed to harvest"
	ErrMsgShovelFailed    = "Failed to shovel"
	ErrMsgExpandFailed    = "Failed to expand garden"
	ErrMsgSprinklerFailed = "Failed to update sprinkler"
	ErrMsgDecoFailed      = "Failed to update decoration"

	// Shop/tool error messages
	ErrMsgPurchaseFailed = "Failed to complete purchase"
	ErrMsgUpgradeFailed  = "Failed to upgrade tool"

	// Social error messages
	ErrMsgFriendOpFailed      = "Failed to update friends"
	ErrMsgChatFailed          = "Failed to send message"
	ErrMsgVisitFailed         = "Failed to process garden visit"
	ErrMsgMultiplayerDisabled = "Multiplayer is not configured"

	// Admin error messages
	ErrMsgAdminFailed = "Failed to apply admin command"
)

// Success messages for API responses
const (
	MsgSlotActivated   = "Slot activated"
	MsgSlotDeactivated = "Slot deactivated"
	MsgSlotReset       = "Slot reset"
	MsgSaved           = "Saved"
	MsgPlanted         = "Seed planted"
	MsgWatered         = "Watered"
	MsgFertilized      = "Fertilized"
	MsgExpanded        = "Garden expanded"
	MsgSprinklerBought = "Sprinkler purchased"
	MsgSprinklerPlaced = "Sprinkler placed"
	MsgSprinklerTaken  = "Sprinkler returned to inventory"
	MsgDecoPlaced      = "Decoration placed"
	MsgDecoRemoved     = "Decoration removed"
	MsgPurchased       = "Purchase complete"
	MsgToolUpgraded    = "Tool upgraded"
	MsgFriendRequested = "Friend request sent"
	MsgFriendResponded = "Friend request answered"
	MsgUnfriended      = "Friend removed"
	MsgMessageSent     = "Message sent"
	MsgVisitRequested  = "Garden visit requested"
	MsgVisitResponded  = "Garden visit answered"
	MsgAdminApplied    = "Admin command applied"
)
