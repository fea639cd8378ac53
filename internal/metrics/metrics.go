package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names
const (
	LabelDie       = "die"
	LabelStore     = "store"
	LabelOperation = "operation"
	LabelResult    = "result"
	LabelMethod    = "method"
	LabelRoute     = "route"
	LabelStatus    = "status"
)

// Result label values
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Roll metrics
var (
	RollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dndice_rolls_total",
			Help: "Total number of roll requests by die size",
		},
		[]string{LabelDie},
	)

	DiceThrownTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dndice_dice_thrown_total",
			Help: "Total number of individual dice thrown",
		},
	)
)

// Quick roll store metrics
var (
	QuickRollOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dndice_quick_roll_operations_total",
			Help: "Quick roll store operations by store, operation and result",
		},
		[]string{LabelStore, LabelOperation, LabelResult},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dndice_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelRoute, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dndice_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelRoute},
	)
)
