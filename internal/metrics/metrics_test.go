package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch(150*time.Millisecond, OutcomeLoaded, 42)
	m.ObserveFetch(time.Second, OutcomeFailed, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchOutcomes.WithLabelValues(OutcomeLoaded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchOutcomes.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.loadedAlerts))
}

func TestObserveViewAndRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveView("grouped")
	m.ObserveView("grouped")
	m.ObserveRequest("/", http.StatusOK)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.viewComputations.WithLabelValues("grouped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch(time.Second, OutcomeEmpty, 0)
		m.ObserveView("with-bugs")
		m.ObserveRequest("/", http.StatusOK)
	})
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveFetch(time.Millisecond, OutcomeLoaded, 3)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	count, err := testutil.GatherAndCount(m.gatherer, "alertdash_loaded_alerts")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
