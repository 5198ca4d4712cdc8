package sensor

import (
	"math"
	"math/rand/v2"
)

// Ranges and probabilities of the simulated sensors.
const (
	MinTemperature = 20
	MaxTemperature = 40
	MinGasLevel    = 10
	MaxGasLevel    = 100

	smokeChance  = 0.2
	motionChance = 0.5
)

// MockGenerator fabricates readings from a pseudo-random source.
// It is not safe for concurrent use; the dashboard calls it from a single
// goroutine.
type MockGenerator struct {
	rng *rand.Rand
}

// NewMockGenerator returns a generator seeded from the runtime's entropy.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededMockGenerator returns a generator with a fixed seed, producing
// the same sequence on every run.
func NewSeededMockGenerator(seed1, seed2 uint64) *MockGenerator {
	return &MockGenerator{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Read returns a new simulated reading.
func (g *MockGenerator) Read() Reading {
	return Reading{
		Temperature: g.randomRange(MinTemperature, MaxTemperature),
		GasLevel:    g.randomRange(MinGasLevel, MaxGasLevel),
		Smoke:       g.rng.Float64() < smokeChance,
		Motion:      g.rng.Float64() < motionChance,
	}
}

// randomRange picks a uniform float in [lo, hi] and rounds it, so both
// endpoints are reachable.
func (g *MockGenerator) randomRange(lo, hi int) int {
	v := float64(lo) + g.rng.Float64()*float64(hi-lo)
	return int(math.Round(v))
}

// Fixed returns a generator that always yields r.
func Fixed(r Reading) Generator {
	return GeneratorFunc(func() Reading { return r })
}

// Sequence returns a generator cycling through rs in order.
func Sequence(rs ...Reading) Generator {
	i := 0
	return GeneratorFunc(func() Reading {
		if len(rs) == 0 {
			return Reading{}
		}
		r := rs[i%len(rs)]
		i++
		return r
	})
}
