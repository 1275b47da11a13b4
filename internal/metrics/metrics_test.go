package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.AuthAttempt(OutcomeSuccess)
	r.AuthAttempt(OutcomeSuccess)
	r.AuthAttempt(OutcomeBadCredential)
	r.QuotaDecision("Predict", "allowed")
	r.QuotaDecision("Predict", "quota_exceeded")
	r.SessionsClosed(ReasonLogout, 1)
	r.SessionsClosed(ReasonExpired, 3)
	r.SessionsClosed(ReasonExpired, 0)
	r.AttributionRecord(KindReport)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.authAttempts.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.authAttempts.WithLabelValues(OutcomeBadCredential)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.quotaDecisions.WithLabelValues("Predict", "quota_exceeded")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.sessionsClosed.WithLabelValues(ReasonExpired)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.attributionRecords.WithLabelValues(KindReport)))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.AuthAttempt(OutcomeSuccess)
		r.QuotaDecision("Predict", "allowed")
		r.SessionsClosed(ReasonLogout, 1)
		r.AttributionRecord(KindPrediction)
	})
	assert.Nil(t, r.Registry())

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.QuotaDecision("Predict", "allowed")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `crimewatch_quota_decisions_total{action="Predict",outcome="allowed"} 1`)
}
