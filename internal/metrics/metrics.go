// Package metrics instruments a completed scheduling run with Prometheus
// collectors, grounded on noah-isme/sma-adp-api's internal/service
// MetricsService: a private registry built in a constructor, one field
// per collector, and a Record method that updates every collector from a
// single result snapshot rather than scattering Inc/Set calls through the
// scheduler itself.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wkatu/timetable/internal/scheduler"
)

// Collector holds the Prometheus instrumentation for one or more
// scheduling runs.
type Collector struct {
	registry *prometheus.Registry
	handler  http.Handler

	streamsPlaced      prometheus.Counter
	streamsUnscheduled *prometheus.CounterVec
	roomUtilization    *prometheus.GaugeVec
	instructorHours    *prometheus.GaugeVec
	runsTotal          prometheus.Counter
}

// NewCollector registers the scheduler's collectors against a fresh
// registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	streamsPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_streams_placed_total",
		Help: "Total number of streams successfully placed across all runs",
	})

	streamsUnscheduled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_streams_unscheduled_total",
		Help: "Total number of streams left unscheduled, labeled by reason",
	}, []string{"reason"})

	roomUtilization := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timetable_room_utilization_ratio",
		Help: "Fraction of the weekly grid reserved for a room, last run",
	}, []string{"room"})

	instructorHours := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timetable_instructor_hours",
		Help: "Weekly assigned hour count per instructor, last run",
	}, []string{"instructor"})

	runsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_runs_total",
		Help: "Total number of scheduling runs completed",
	})

	registry.MustRegister(streamsPlaced, streamsUnscheduled, roomUtilization, instructorHours, runsTotal)

	return &Collector{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		streamsPlaced:      streamsPlaced,
		streamsUnscheduled: streamsUnscheduled,
		roomUtilization:    roomUtilization,
		instructorHours:    instructorHours,
		runsTotal:          runsTotal,
	}
}

// Handler exposes the Prometheus scrape handler.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return c.handler
}

// Record updates every collector from one completed ScheduleResult
// (spec.md §4.9's statistics block, gauge-refreshed per run since C9's
// utilization and hour totals describe the latest run, not a cumulative
// sum).
func (c *Collector) Record(result scheduler.ScheduleResult) {
	if c == nil {
		return
	}
	c.runsTotal.Inc()
	c.streamsPlaced.Add(float64(result.Statistics.TotalAssigned))

	for _, u := range result.Unscheduled {
		c.streamsUnscheduled.WithLabelValues(u.Reason.String()).Inc()
	}

	for room, pct := range result.Statistics.RoomUtilization {
		c.roomUtilization.WithLabelValues(room).Set(pct / 100)
	}

	for _, instructor := range result.InstructorNames() {
		c.instructorHours.WithLabelValues(instructor).Set(float64(result.Statistics.InstructorHours[instructor]))
	}
}
