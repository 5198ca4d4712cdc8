package sensor

import (
	"testing"
)

func TestMockGeneratorRanges(t *testing.T) {
	g := NewSeededMockGenerator(1, 2)

	var smoke, motion int
	const n = 5000
	for i := 0; i < n; i++ {
		r := g.Read()
		if r.Temperature < MinTemperature || r.Temperature > MaxTemperature {
			t.Fatalf("temperature out of range: %d", r.Temperature)
		}
		if r.GasLevel < MinGasLevel || r.GasLevel > MaxGasLevel {
			t.Fatalf("gas level out of range: %d", r.GasLevel)
		}
		if r.Smoke {
			smoke++
		}
		if r.Motion {
			motion++
		}
	}

	// Loose bounds around p=0.2 and p=0.5.
	if smoke < n/10 || smoke > n*3/10 {
		t.Errorf("smoke ratio: got %d/%d", smoke, n)
	}
	if motion < n*4/10 || motion > n*6/10 {
		t.Errorf("motion ratio: got %d/%d", motion, n)
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewSeededMockGenerator(42, 7)
	b := NewSeededMockGenerator(42, 7)
	for i := 0; i < 50; i++ {
		if ra, rb := a.Read(), b.Read(); ra != rb {
			t.Fatalf("reading %d: got %+v and %+v", i, ra, rb)
		}
	}
}

func TestSequenceCycles(t *testing.T) {
	first := Reading{Temperature: 21}
	second := Reading{Temperature: 39, Smoke: true}
	g := Sequence(first, second)

	want := []Reading{first, second, first}
	for i, w := range want {
		if got := g.Read(); got != w {
			t.Errorf("read %d: got %+v, want %+v", i, got, w)
		}
	}

	if got := Sequence().Read(); got != (Reading{}) {
		t.Errorf("empty sequence: got %+v", got)
	}
}

func TestFixed(t *testing.T) {
	r := Reading{Temperature: 30, GasLevel: 55, Motion: true}
	g := Fixed(r)
	for i := 0; i < 3; i++ {
		if got := g.Read(); got != r {
			t.Errorf("got %+v, want %+v", got, r)
		}
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		r                  Reading
		smoke, motion, tmp string
	}{
		{Reading{Temperature: 35, Smoke: true, Motion: true}, "has smoke", "person present", "35°C"},
		{Reading{Temperature: 20}, "normal", "nobody", "20°C"},
	}
	for _, tt := range tests {
		if got := tt.r.SmokeText(); got != tt.smoke {
			t.Errorf("SmokeText: got %q, want %q", got, tt.smoke)
		}
		if got := tt.r.MotionText(); got != tt.motion {
			t.Errorf("MotionText: got %q, want %q", got, tt.motion)
		}
		if got := tt.r.TemperatureText(); got != tt.tmp {
			t.Errorf("TemperatureText: got %q, want %q", got, tt.tmp)
		}
	}
}
