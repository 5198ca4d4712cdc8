// Package metrics exports dashboard cycles as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/luki/hazard/internal/dashboard"
	"github.com/luki/hazard/internal/risk"
)

// Collector records every rendered snapshot.
type Collector struct {
	Cycles       *prometheus.CounterVec
	Levels       *prometheus.CounterVec
	Alerts       prometheus.Counter
	RiskScore    prometheus.Gauge
	Temperature  prometheus.Gauge
	GasLevel     prometheus.Gauge
	SeriesPoints prometheus.Gauge
	Periodic     prometheus.Gauge
}

// NewCollector creates and registers the metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	c := &Collector{
		Cycles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hazard_cycles_total",
			Help: "Dashboard cycles run, by trigger.",
		}, []string{"trigger"}),
		Levels: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hazard_level_total",
			Help: "Cycles classified into each risk level.",
		}, []string{"level"}),
		Alerts: f.NewCounter(prometheus.CounterOpts{
			Name: "hazard_alerts_total",
			Help: "Danger alerts recorded.",
		}),
		RiskScore: f.NewGauge(prometheus.GaugeOpts{
			Name: "hazard_risk_score",
			Help: "Risk score of the latest cycle (0-100).",
		}),
		Temperature: f.NewGauge(prometheus.GaugeOpts{
			Name: "hazard_temperature_celsius",
			Help: "Temperature of the latest reading.",
		}),
		GasLevel: f.NewGauge(prometheus.GaugeOpts{
			Name: "hazard_gas_level",
			Help: "Gas index of the latest reading.",
		}),
		SeriesPoints: f.NewGauge(prometheus.GaugeOpts{
			Name: "hazard_series_points",
			Help: "Points currently held in the chart window.",
		}),
		Periodic: f.NewGauge(prometheus.GaugeOpts{
			Name: "hazard_periodic_enabled",
			Help: "1 while periodic cycling is enabled.",
		}),
	}
	for _, l := range []risk.Level{risk.Safe, risk.Warning, risk.Danger} {
		c.Levels.WithLabelValues(l.String())
	}
	return c
}

// Render implements dashboard.Renderer.
func (c *Collector) Render(s dashboard.Snapshot) {
	c.Cycles.WithLabelValues(s.Trigger.String()).Inc()
	c.Levels.WithLabelValues(s.Level.String()).Inc()
	if s.Alert != nil {
		c.Alerts.Inc()
	}
	c.RiskScore.Set(float64(s.Score))
	c.Temperature.Set(float64(s.Reading.Temperature))
	c.GasLevel.Set(float64(s.Reading.GasLevel))
	c.SeriesPoints.Set(float64(len(s.Series)))
}

// StateChanged implements dashboard.StateObserver.
func (c *Collector) StateChanged(s dashboard.State) {
	if s == dashboard.StatePeriodic {
		c.Periodic.Set(1)
		return
	}
	if s == dashboard.StateIdle {
		c.Periodic.Set(0)
	}
}
