// Package history provides the rolling window of risk scores that feeds the
// dashboard chart, with min/peak/avg statistics over the window.
package history

import (
	"time"

	"github.com/luki/hazard/internal/risk"
)

// DefaultCapacity is the number of points kept on the chart.
const DefaultCapacity = 20

// LabelLayout formats point labels as 24h wall-clock time.
const LabelLayout = "15:04:05"

// Point is a single data point in the risk history.
type Point struct {
	Label string
	Value risk.Score
	Time  time.Time
}

// Buffer stores a bounded FIFO of risk scores. The oldest point is evicted
// once the buffer is full.
type Buffer struct {
	points []Point
	max    int
}

// NewBuffer creates a new history buffer with the given capacity. A
// capacity below one falls back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		points: make([]Point, 0, capacity),
		max:    capacity,
	}
}

// Push appends a score taken at t, labelled with its wall-clock time.
func (b *Buffer) Push(score risk.Score, t time.Time) {
	b.Append(t.Format(LabelLayout), score, t)
}

// Append adds a point at the tail and evicts from the head until the buffer
// fits its capacity.
func (b *Buffer) Append(label string, score risk.Score, t time.Time) {
	p := Point{Label: label, Value: score, Time: t}
	if len(b.points) >= b.max {
		copy(b.points, b.points[1:])
		b.points[len(b.points)-1] = p
		return
	}
	b.points = append(b.points, p)
}

// Len returns the number of stored points.
func (b *Buffer) Len() int {
	return len(b.points)
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return b.max
}

// Points returns a copy of all points, oldest first.
func (b *Buffer) Points() []Point {
	out := make([]Point, len(b.points))
	copy(out, b.points)
	return out
}

// Min returns the lowest score in the window, or 0 if empty.
func (b *Buffer) Min() risk.Score {
	if len(b.points) == 0 {
		return 0
	}
	lo := b.points[0].Value
	for _, p := range b.points[1:] {
		if p.Value < lo {
			lo = p.Value
		}
	}
	return lo
}

// Peak returns the highest score in the window, or 0 if empty.
func (b *Buffer) Peak() risk.Score {
	if len(b.points) == 0 {
		return 0
	}
	hi := b.points[0].Value
	for _, p := range b.points[1:] {
		if p.Value > hi {
			hi = p.Value
		}
	}
	return hi
}

// Avg returns the average score across all stored points.
func (b *Buffer) Avg() float64 {
	if len(b.points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range b.points {
		sum += float64(p.Value)
	}
	return sum / float64(len(b.points))
}

// Stats summarises the window for display.
type Stats struct {
	Points   int
	Capacity int
	Low      risk.Score
	Peak     risk.Score
	Avg      float64
}

// Stats returns the current window statistics.
func (b *Buffer) Stats() Stats {
	return Stats{
		Points:   b.Len(),
		Capacity: b.Cap(),
		Low:      b.Min(),
		Peak:     b.Peak(),
		Avg:      b.Avg(),
	}
}
