// Package dashboard runs hazard update cycles: generate a reading, score and
// classify it, append it to the chart window, log an alert on Danger, and
// hand a snapshot to the renderers.
package dashboard

import (
	"time"

	"github.com/luki/hazard/internal/alert"
	"github.com/luki/hazard/internal/history"
	"github.com/luki/hazard/internal/risk"
	"github.com/luki/hazard/internal/sensor"
)

// Trigger says what started a cycle.
type Trigger int

const (
	TriggerStartup Trigger = iota
	TriggerManual
	TriggerPeriodic
)

func (t Trigger) String() string {
	switch t {
	case TriggerStartup:
		return "startup"
	case TriggerManual:
		return "manual"
	case TriggerPeriodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// Snapshot is the outcome of one cycle. Series and Alerts are copies, so
// renderers may keep them without affecting the dashboard.
type Snapshot struct {
	Cycle   uint64
	Trigger Trigger
	State   State
	Time    time.Time
	Reading sensor.Reading
	Score   risk.Score
	Level   risk.Level
	Series  []history.Point
	Stats   history.Stats
	Alerts  []alert.Record
	// Alert is set when this cycle raised a new alert.
	Alert *alert.Record
}

// Dashboard owns the time-series window and the alert log. It is not safe
// for concurrent use; Controller serializes access to it.
type Dashboard struct {
	gen    sensor.Generator
	clock  Clock
	series *history.Buffer
	alerts *alert.Log
	cycles uint64
}

// New creates a dashboard reading from gen.
func New(gen sensor.Generator, clock Clock, seriesCapacity, alertCapacity int) *Dashboard {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Dashboard{
		gen:    gen,
		clock:  clock,
		series: history.NewBuffer(seriesCapacity),
		alerts: alert.NewLog(alertCapacity),
	}
}

// Cycle runs one full update and returns its snapshot.
func (d *Dashboard) Cycle(trigger Trigger, state State) Snapshot {
	now := d.clock.Now()
	reading := d.gen.Read()
	score, level := risk.Evaluate(reading)

	d.series.Push(score, now)
	d.cycles++

	snap := Snapshot{
		Cycle:   d.cycles,
		Trigger: trigger,
		State:   state,
		Time:    now,
		Reading: reading,
		Score:   score,
		Level:   level,
	}
	if level == risk.Danger {
		rec := d.alerts.Record(score, reading, now)
		snap.Alert = &rec
	}
	snap.Series = d.series.Points()
	snap.Stats = d.series.Stats()
	snap.Alerts = d.alerts.Entries()
	return snap
}

// Series exposes the chart window for read-only use by the owner goroutine.
func (d *Dashboard) Series() *history.Buffer { return d.series }

// Alerts exposes the alert log for read-only use by the owner goroutine.
func (d *Dashboard) Alerts() *alert.Log { return d.alerts }

// Cycles returns how many cycles have run.
func (d *Dashboard) Cycles() uint64 { return d.cycles }
