package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/merute/welcome/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := metrics.New()
	m.ObserveSubmission(metrics.OutcomeSuccess, 1500*time.Millisecond)
	m.ObserveSubmission(metrics.OutcomeInvalid, 0)
	m.ObserveUpload("recto", metrics.UploadAccepted)
	m.ObserveUpload("recto", metrics.UploadTooLarge)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Uploads.WithLabelValues("recto", metrics.UploadTooLarge)))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a, b := metrics.New(), metrics.New()
	a.ObserveSubmission(metrics.OutcomeFailure, time.Second)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Submissions.WithLabelValues(metrics.OutcomeFailure)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveSubmission(metrics.OutcomeSuccess, time.Second)
	m.ObserveUpload("verso", metrics.UploadAccepted)
	m.WatchDialogSessions(func() int { return 3 })
	m.WatchInFlightSubmits(func() int { return 1 })
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	sessions := 2
	m.WatchDialogSessions(func() int { return sessions })
	m.WatchInFlightSubmits(func() int { return 0 })

	scrape := func() string {
		rr := httptest.NewRecorder()
		m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
		body, err := io.ReadAll(rr.Body)
		require.NoError(t, err)
		return string(body)
	}

	body := scrape()
	assert.True(t, strings.Contains(body, "welcome_dialog_sessions 2"))
	assert.True(t, strings.Contains(body, "welcome_partner_submits_in_flight 0"))

	// Sampled on every scrape, so the gauge follows the store down too.
	sessions = 0
	assert.True(t, strings.Contains(scrape(), "welcome_dialog_sessions 0"))
}
