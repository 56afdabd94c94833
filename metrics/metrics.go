// Package metrics provides a Prometheus implementation of [trail.Observer].
//
//	c := metrics.NewCollector()
//	if err := c.Register(prometheus.DefaultRegisterer); err != nil {
//		return err
//	}
//	r, err := trail.New(trail.WithObserver(c))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tigerwill90/trail"
)

// Match outcomes, used as the value of the "outcome" label.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	_ trail.Observer       = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)

type config struct {
	namespace   string
	subsystem   string
	constLabels prometheus.Labels
	buckets     []float64
}

// Option configures a [Collector].
type Option func(*config)

// WithNamespace sets the metrics namespace. Default "trail".
func WithNamespace(namespace string) Option {
	return func(c *config) {
		c.namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem. Default "router".
func WithSubsystem(subsystem string) Option {
	return func(c *config) {
		c.subsystem = subsystem
	}
}

// WithConstLabels sets constant labels added to all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *config) {
		c.constLabels = labels
	}
}

// WithBuckets sets the buckets of the match duration histogram. Default prometheus.DefBuckets.
func WithBuckets(buckets []float64) Option {
	return func(c *config) {
		c.buckets = buckets
	}
}

// Collector records the outcome and the duration of every routing pass.
//
// Metrics collected:
//   - <namespace>_<subsystem>_matches_total: counter of routing passes by outcome
//   - <namespace>_<subsystem>_match_duration_seconds: histogram of the routing pass duration
type Collector struct {
	matches  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewCollector returns a new [Collector]. It must be registered with [Collector.Register] before its
// metrics are exposed.
func NewCollector(opts ...Option) *Collector {
	cfg := config{
		namespace: "trail",
		subsystem: "router",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Collector{
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   cfg.subsystem,
			Name:        "matches_total",
			Help:        "Total number of routing passes by outcome",
			ConstLabels: cfg.constLabels,
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.namespace,
			Subsystem:   cfg.subsystem,
			Name:        "match_duration_seconds",
			Help:        "Routing pass duration in seconds",
			ConstLabels: cfg.constLabels,
			Buckets:     cfg.buckets,
		}),
	}

	for _, outcome := range []string{OutcomeFound, OutcomeNotFound, OutcomeError} {
		c.matches.WithLabelValues(outcome)
	}

	return c
}

// Register registers the collector metrics with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	return reg.Register(c)
}

// ObserveMatch implements [trail.Observer].
func (c *Collector) ObserveMatch(r *trail.Route, err error, elapsed time.Duration) {
	c.matches.WithLabelValues(Outcome(r, err)).Inc()
	c.duration.Observe(elapsed.Seconds())
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.matches.Describe(ch)
	c.duration.Describe(ch)
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.matches.Collect(ch)
	c.duration.Collect(ch)
}

// Outcome returns the outcome label of a routing pass.
func Outcome(r *trail.Route, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case r != nil && r.IsFound():
		return OutcomeFound
	default:
		return OutcomeNotFound
	}
}
