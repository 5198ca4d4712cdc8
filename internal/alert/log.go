// Package alert keeps the newest-first log of danger events raised by the
// dashboard.
package alert

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luki/hazard/internal/risk"
	"github.com/luki/hazard/internal/sensor"
)

// TimeLayout formats the full date and time of an alert.
const TimeLayout = "2006-01-02 15:04:05"

// Placeholder is shown by renderers while the log is empty.
const Placeholder = "No danger events recorded yet."

// Record is one danger event.
type Record struct {
	ID        uuid.UUID
	Time      time.Time
	Timestamp string
	Score     risk.Score
	Reading   sensor.Reading
	Message   string
}

// Log is a newest-first list of alert records. A zero capacity keeps every
// record; otherwise the oldest records are dropped once the cap is reached.
type Log struct {
	entries  []Record
	capacity int
}

// NewLog creates a log holding at most capacity records (0 = unbounded).
func NewLog(capacity int) *Log {
	if capacity < 0 {
		capacity = 0
	}
	return &Log{capacity: capacity}
}

// Record builds an alert for score and r at t and inserts it at the head.
// It does not deduplicate; callers invoke it only for Danger cycles.
func (l *Log) Record(score risk.Score, r sensor.Reading, t time.Time) Record {
	rec := Record{
		ID:        uuid.New(),
		Time:      t,
		Timestamp: t.Format(TimeLayout),
		Score:     score,
		Reading:   r,
		Message:   FormatMessage(score, r),
	}

	l.entries = append(l.entries, Record{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = rec

	if l.capacity > 0 && len(l.entries) > l.capacity {
		l.entries[len(l.entries)-1] = Record{}
		l.entries = l.entries[:l.capacity]
	}
	return rec
}

// FormatMessage renders the human-readable alert text.
func FormatMessage(score risk.Score, r sensor.Reading) string {
	return fmt.Sprintf("Danger score %d (temperature %s, gas %d, smoke: %s, motion: %s), alarm triggered.",
		score, r.TemperatureText(), r.GasLevel, r.SmokeText(), r.MotionText())
}

// Entries returns a copy of the records, newest first.
func (l *Log) Entries() []Record {
	out := make([]Record, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int    { return len(l.entries) }
func (l *Log) Empty() bool { return len(l.entries) == 0 }
