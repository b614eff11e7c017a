package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the assignment module.
type Metrics struct {
	// Cycle outcomes by result
	CycleOutcome *prometheus.CounterVec

	// Full cycle latency including the matching pass and writes
	CycleDuration prometheus.Histogram

	// Leads assigned to sellers
	LeadsAssigned prometheus.Counter

	// Snapshot sizes observed by the last cycle
	PendingLeads    prometheus.Gauge
	EligibleSellers prometheus.Gauge
}

// New creates a new Metrics instance with all assignment module metrics registered.
func New() *Metrics {
	return &Metrics{
		CycleOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_management_assignment_cycles_total",
			Help: "Total assignment cycles by outcome",
		}, []string{"outcome"}), // outcome: "completed", "failed"

		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lead_management_assignment_cycle_duration_seconds",
			Help:    "Duration of full assignment cycles including matching and writes",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		LeadsAssigned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lead_management_assignment_leads_assigned_total",
			Help: "Total leads assigned to sellers",
		}),

		PendingLeads: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lead_management_assignment_pending_leads",
			Help: "Pending leads observed by the most recent cycle",
		}),

		EligibleSellers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lead_management_assignment_eligible_sellers",
			Help: "Active sellers observed by the most recent cycle",
		}),
	}
}

// IncrementCycle records a cycle outcome.
func (m *Metrics) IncrementCycle(outcome string) {
	if m != nil {
		m.CycleOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveCycleDuration records how long a full cycle took.
func (m *Metrics) ObserveCycleDuration(d time.Duration) {
	if m != nil {
		m.CycleDuration.Observe(d.Seconds())
	}
}

// AddLeadsAssigned records leads assigned by a completed cycle.
func (m *Metrics) AddLeadsAssigned(n int) {
	if m != nil {
		m.LeadsAssigned.Add(float64(n))
	}
}

// RecordSnapshot records the cycle's view of the pending and seller pools.
func (m *Metrics) RecordSnapshot(pendingLeads, eligibleSellers int) {
	if m != nil {
		m.PendingLeads.Set(float64(pendingLeads))
		m.EligibleSellers.Set(float64(eligibleSellers))
	}
}
