package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/luki/hazard/internal/risk"
)

func TestHistory(t *testing.T) {
	h := NewBuffer(5)

	now := time.Now()
	for i := 0; i < 7; i++ {
		h.Push(risk.Score(30+i), now.Add(time.Duration(i)*time.Second))
	}

	if h.Len() != 5 {
		t.Errorf("expected 5 points, got %d", h.Len())
	}

	if h.Min() != 32 {
		t.Errorf("Min(): got %d, want 32", h.Min())
	}

	if h.Peak() != 36 {
		t.Errorf("Peak(): got %d, want 36", h.Peak())
	}

	if h.Avg() != 34 {
		t.Errorf("Avg(): got %f, want 34", h.Avg())
	}

	want := Stats{Points: 5, Capacity: 5, Low: 32, Peak: 36, Avg: 34}
	if got := h.Stats(); got != want {
		t.Errorf("Stats(): got %+v, want %+v", got, want)
	}
}

func TestEmptyStats(t *testing.T) {
	want := Stats{Capacity: DefaultCapacity}
	if got := NewBuffer(DefaultCapacity).Stats(); got != want {
		t.Errorf("Stats() on empty buffer: got %+v, want %+v", got, want)
	}
}

func TestLengthInvariant(t *testing.T) {
	h := NewBuffer(DefaultCapacity)
	base := time.Date(2026, 2, 21, 14, 0, 0, 0, time.Local)

	for n := 1; n <= 45; n++ {
		h.Push(risk.Score(n%101), base.Add(time.Duration(n)*time.Second))
		want := n
		if want > DefaultCapacity {
			want = DefaultCapacity
		}
		if h.Len() != want {
			t.Fatalf("after %d appends: len %d, want %d", n, h.Len(), want)
		}
	}
}

func TestFIFOEviction(t *testing.T) {
	h := NewBuffer(DefaultCapacity)

	for i := 0; i < 21; i++ {
		h.Append(fmt.Sprintf("p%02d", i), risk.Score(i), time.Time{})
	}

	pts := h.Points()
	if len(pts) != 20 {
		t.Fatalf("expected 20 points, got %d", len(pts))
	}
	if pts[0].Label != "p01" {
		t.Errorf("oldest point: got %s, want p01", pts[0].Label)
	}
	if pts[19].Label != "p20" {
		t.Errorf("newest point: got %s, want p20", pts[19].Label)
	}
	for _, p := range pts {
		if p.Label == "p00" {
			t.Error("first point should have been evicted")
		}
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Value <= pts[i-1].Value {
			t.Errorf("points out of insertion order at %d", i)
		}
	}
}

func TestPointsIsCopy(t *testing.T) {
	h := NewBuffer(3)
	h.Append("a", 10, time.Time{})

	pts := h.Points()
	pts[0].Value = 99

	if got := h.Points()[0].Value; got != 10 {
		t.Errorf("buffer mutated through Points(): got %d", got)
	}
}

func TestPushLabels(t *testing.T) {
	h := NewBuffer(4)
	base := time.Date(2026, 2, 21, 9, 5, 7, 0, time.Local)
	h.Push(12, base)
	h.Push(75, base.Add(5*time.Second))

	pts := h.Points()
	if pts[0].Label != "09:05:07" || pts[1].Label != "09:05:12" {
		t.Errorf("labels: got %q, %q", pts[0].Label, pts[1].Label)
	}
	if pts[0].Value != 12 || pts[1].Value != 75 {
		t.Errorf("values: got %d, %d", pts[0].Value, pts[1].Value)
	}
}

func TestNewBufferFallback(t *testing.T) {
	if got := NewBuffer(0).Cap(); got != DefaultCapacity {
		t.Errorf("Cap(): got %d, want %d", got, DefaultCapacity)
	}
}
