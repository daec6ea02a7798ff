package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameTicksTotal         = "game_ticks_total"
	MetricNameActionsTotal       = "garden_actions_total"
	MetricNameHarvestValue       = "harvest_value_coins"
	MetricNamePlantsHarvested    = "plants_harvested_total"
	MetricNameSeedsPlanted       = "seeds_planted_total"
	MetricNameChallengesComplete = "challenges_completed_total"
	MetricNameSlotSaves          = "slot_saves_total"
	MetricNameSyncMessages       = "sync_messages_total"
	MetricNameSyncReconnects     = "sync_reconnects_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextTicksTotal         = "Total number of game ticks processed"
	HelpTextActionsTotal       = "Total number of garden actions performed"
	HelpTextHarvestValue       = "Coin value of individual harvests"
	HelpTextPlantsHarvested    = "Total number of plants harvested"
	HelpTextSeedsPlanted       = "Total number of seeds planted"
	HelpTextChallengesComplete = "Total number of challenges completed"
	HelpTextSlotSaves          = "Total number of save-slot writes"
	HelpTextSyncMessages       = "Total number of sync messages by direction and kind"
	HelpTextSyncReconnects     = "Total number of sync server reconnect attempts"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelAction    = "action"
	LabelSeed      = "seed"
	LabelPeriod    = "period"
	LabelSlot      = "slot"
	LabelDirection = "direction"
	LabelKind      = "kind"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// HarvestValueBuckets covers the coin range of a single harvest, from an
// early common plant up to a boosted legendary.
var HarvestValueBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecode = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded    = "Metrics recorded for event"
)
