package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicksTotal,
			Help: HelpTextTicksTotal,
		},
	)

	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsTotal,
			Help: HelpTextActionsTotal,
		},
		[]string{LabelAction},
	)

	HarvestValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameHarvestValue,
			Help:    HelpTextHarvestValue,
			Buckets: HarvestValueBuckets,
		},
	)

	PlantsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsHarvested,
			Help: HelpTextPlantsHarvested,
		},
		[]string{LabelSeed},
	)

	SeedsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSeedsPlanted,
			Help: HelpTextSeedsPlanted,
		},
		[]string{LabelSeed},
	)

	ChallengesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChallengesComplete,
			Help: HelpTextChallengesComplete,
		},
		[]string{LabelPeriod},
	)

	SlotSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSlotSaves,
			Help: HelpTextSlotSaves,
		},
		[]string{LabelSlot},
	)

	SyncMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncMessages,
			Help: HelpTextSyncMessages,
		},
		[]string{LabelDirection, LabelKind},
	)

	SyncReconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSyncReconnects,
			Help: HelpTextSyncReconnects,
		},
	)
)
