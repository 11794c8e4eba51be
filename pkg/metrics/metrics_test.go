package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()

	c.ObserveUpstream("tfl", "ok", 200*time.Millisecond)
	c.ObserveUpstream("tfl", "ok", 100*time.Millisecond)
	c.ObserveUpstream("osrm", "transport_failure", time.Second)
	c.ObserveOptions(3, 2)
	c.ObserveRoadRoute("walking", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.UpstreamRequests.WithLabelValues("tfl", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.UpstreamRequests.WithLabelValues("osrm", "transport_failure")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.OptionsListed))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.OptionsDiscarded))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HaversineFallback))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveUpstream("tfl", "ok", time.Second)
		c.ObserveOptions(1, 1)
		c.ObserveJourneyPlanned()
		c.ObserveCostEstimate()
		c.ObserveRoadRoute("driving", false)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.ObserveJourneyPlanned()

	recorder := httptest.NewRecorder()
	c.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "commute_journeys_planned_total 1")
}
