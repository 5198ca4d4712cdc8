// Package risk maps a sensor reading to a bounded hazard score and
// classifies that score into Safe, Warning and Danger bands.
package risk

import (
	"math"

	"github.com/luki/hazard/internal/sensor"
)

// Score is a hazard score in [MinScore, MaxScore].
type Score int

const (
	MinScore Score = 0
	MaxScore Score = 100
)

// Contribution weights and guards of the additive scoring model.
const (
	tempBaseline   = 25
	tempWeight     = 2.0
	gasBaseline    = 40
	gasWeight      = 1.5
	smokeBonus     = 30.0
	motionBonus    = 10.0
	motionHotTemp  = 30
	motionHeavyGas = 60
)

// Compute scores a reading. It accepts any field values and always returns
// a score clamped to [MinScore, MaxScore].
func Compute(r sensor.Reading) Score {
	var s float64

	if r.Temperature > tempBaseline {
		s += float64(r.Temperature-tempBaseline) * tempWeight
	}
	if r.GasLevel > gasBaseline {
		s += float64(r.GasLevel-gasBaseline) * gasWeight
	}
	if r.Smoke {
		s += smokeBonus
	}
	if r.Motion && (r.Temperature > motionHotTemp || r.GasLevel > motionHeavyGas) {
		s += motionBonus
	}

	return Clamp(roundHalfUp(s))
}

// Evaluate scores and classifies r in one step.
func Evaluate(r sensor.Reading) (Score, Level) {
	s := Compute(r)
	return s, Classify(s)
}

// Clamp bounds v to [MinScore, MaxScore].
func Clamp(v float64) Score {
	if v < float64(MinScore) {
		return MinScore
	}
	if v > float64(MaxScore) {
		return MaxScore
	}
	return Score(v)
}

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
