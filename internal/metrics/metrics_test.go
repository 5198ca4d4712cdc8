package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/hazard/internal/alert"
	"github.com/luki/hazard/internal/dashboard"
	"github.com/luki/hazard/internal/history"
	"github.com/luki/hazard/internal/risk"
	"github.com/luki/hazard/internal/sensor"
)

func TestCollectorRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.Render(dashboard.Snapshot{
		Trigger: dashboard.TriggerManual,
		Reading: sensor.Reading{Temperature: 33, GasLevel: 20},
		Score:   16,
		Level:   risk.Safe,
		Series:  make([]history.Point, 3),
	})
	c.Render(dashboard.Snapshot{
		Trigger: dashboard.TriggerPeriodic,
		Reading: sensor.Reading{Temperature: 35, GasLevel: 80, Smoke: true, Motion: true},
		Score:   100,
		Level:   risk.Danger,
		Series:  make([]history.Point, 4),
		Alert:   &alert.Record{},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Cycles.WithLabelValues("manual")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Cycles.WithLabelValues("periodic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Levels.WithLabelValues("danger")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Levels.WithLabelValues("warning")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Alerts))
	assert.Equal(t, 100.0, testutil.ToFloat64(c.RiskScore))
	assert.Equal(t, 80.0, testutil.ToFloat64(c.GasLevel))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.SeriesPoints))
}

func TestCollectorState(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.StateChanged(dashboard.StatePeriodic)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Periodic))

	c.StateChanged(dashboard.StateIdle)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Periodic))
}

func TestRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RiskScore.Set(42)

	srv := httptest.NewServer(NewRouter(reg, func() string { return "periodic" }))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	n, err := testutil.GatherAndCount(reg, "hazard_risk_score")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	resp2, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp2.Body.Close()

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "periodic", health["state"])

	req := httptest.NewRequest(http.MethodPost, "/healthz", strings.NewReader(""))
	rec := httptest.NewRecorder()
	NewRouter(reg, nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
