// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RosterRowsRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roster_rows_read_total",
			Help: "Total number of raw rows read from the input sheet",
		},
	)

	RosterRowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_rows_dropped_total",
			Help: "Total number of raw rows dropped during normalization",
		},
		[]string{"reason"},
	)

	SeatsAssigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seats_assigned_total",
			Help: "Total number of seats assigned per program",
		},
		[]string{"program"},
	)

	RoomsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rooms_opened_total",
			Help: "Total number of rooms opened per program",
		},
		[]string{"program"},
	)

	AllocationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "allocation_duration_seconds",
			Help: "Duration of a full allocation run in seconds",
		},
	)
)

// Drop reasons used with RosterRowsDropped.
const (
	DropReasonMissingID      = "missing_id"
	DropReasonMissingProgram = "missing_program"
	DropReasonDuplicateID    = "duplicate_id"
)
