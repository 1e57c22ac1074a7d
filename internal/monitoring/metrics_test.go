package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveBuffet(t *testing.T) {
	c := NewCollector()

	c.ObserveBuffet("custom", 10, 2970)
	c.ObserveBuffet("custom", 4, 800)
	c.ObserveBuffet("economical", 20, 1500)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.buffets.WithLabelValues("custom")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.buffets.WithLabelValues("economical")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.guests))

	status := c.Status()
	assert.Equal(t, "economical", status["last_buffet_kind"])
	assert.Contains(t, status, "last_buffet_at")
}

func TestCollector_ObserveWeekAndRequest(t *testing.T) {
	c := NewCollector()

	c.ObserveWeek("generated")
	c.ObserveWeek("generated")
	c.ObserveWeek("persisted")
	c.ObserveRequest(http.MethodGet, "/health", http.StatusOK)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.weeks.WithLabelValues("generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.weeks.WithLabelValues("persisted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, "persisted", c.Status()["last_week_source"])
}

func TestCollector_Status(t *testing.T) {
	c := NewCollector()

	status := c.Status()
	assert.Contains(t, status, "uptime_seconds")

	status["uptime_seconds"] = -1.0
	assert.NotEqual(t, -1.0, c.Status()["uptime_seconds"], "status is a copy")
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveBuffet("balanced", 12, 1000)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	require.NoError(t, err)
	c.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `buffet_computations_total{kind="balanced"} 1`))
	assert.Contains(t, body, "buffet_guests_bucket")
}
