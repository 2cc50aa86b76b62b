package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics counts checkout flow outcomes.
type CheckoutMetrics struct {
	started   prometheus.Counter
	outcomes  *prometheus.CounterVec
	confirmed prometheus.Counter
}

// NewCheckoutMetrics registers checkout counters on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	started := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_started_total",
		Help: "Checkout flows initiated.",
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcome_total",
		Help: "Terminal checkout outcomes by state.",
	}, []string{"outcome"})
	confirmed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_confirmed_total",
		Help: "Payments confirmed and orders placed.",
	})
	reg.MustRegister(started, outcomes, confirmed)
	return &CheckoutMetrics{started: started, outcomes: outcomes, confirmed: confirmed}
}

// IncStarted counts a new checkout flow.
func (c *CheckoutMetrics) IncStarted() {
	if c == nil || c.started == nil {
		return
	}
	c.started.Inc()
}

// IncOutcome counts a terminal outcome label (confirmed/failed).
func (c *CheckoutMetrics) IncOutcome(outcome string) {
	if c == nil || c.outcomes == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	c.outcomes.WithLabelValues(outcome).Inc()
}

// IncConfirmed counts a confirmed payment.
func (c *CheckoutMetrics) IncConfirmed() {
	if c == nil || c.confirmed == nil {
		return
	}
	c.confirmed.Inc()
}
