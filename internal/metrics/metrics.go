package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
)

// Upload outcomes.
const (
	UploadAccepted = "accepted"
	UploadTooLarge = "too_large"
	UploadNotImage = "not_image"
	UploadStale    = "stale"
	UploadError    = "error"
)

// Metrics holds all Prometheus metrics for the site. Each instance owns its
// registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	Submissions    *prometheus.CounterVec
	SubmitDuration prometheus.Histogram
	Uploads        *prometheus.CounterVec
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "welcome_partner_submissions_total",
			Help: "Partner application submissions by outcome",
		}, []string{"outcome"}),
		SubmitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "welcome_partner_submit_duration_seconds",
			Help:    "Time spent handing an application to the submitter",
			Buckets: []float64{0.1, 0.5, 1, 1.5, 2, 5, 10},
		}),
		Uploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "welcome_partner_uploads_total",
			Help: "Identity document uploads by side and outcome",
		}, []string{"side", "outcome"}),
	}
}

// ObserveSubmission records a submission outcome. Safe on a nil receiver.
func (m *Metrics) ObserveSubmission(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess || outcome == OutcomeFailure {
		m.SubmitDuration.Observe(d.Seconds())
	}
}

// ObserveUpload records an upload outcome. Safe on a nil receiver.
func (m *Metrics) ObserveUpload(side, outcome string) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(side, outcome).Inc()
}

// WatchDialogSessions registers a gauge sampling count at scrape time. Call
// it once per Metrics. Safe on a nil receiver.
func (m *Metrics) WatchDialogSessions(count func() int) {
	m.watch("welcome_dialog_sessions", "Live partner dialog sessions held in memory", count)
}

// WatchInFlightSubmits registers a gauge of submissions being delivered.
// Call it once per Metrics. Safe on a nil receiver.
func (m *Metrics) WatchInFlightSubmits(count func() int) {
	m.watch("welcome_partner_submits_in_flight", "Partner applications currently being delivered", count)
}

func (m *Metrics) watch(name, help string, count func() int) {
	if m == nil {
		return
	}
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help},
		func() float64 { return float64(count()) })
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
