package sensor

import "strconv"

// Human-readable sensor states shown on the status panel and in alerts.
const (
	SmokeLabel    = "has smoke"
	NoSmokeLabel  = "normal"
	MotionLabel   = "person present"
	NoMotionLabel = "nobody"
)

// SmokeText describes the smoke detector state.
func (r Reading) SmokeText() string {
	if r.Smoke {
		return SmokeLabel
	}
	return NoSmokeLabel
}

// MotionText describes the PIR state.
func (r Reading) MotionText() string {
	if r.Motion {
		return MotionLabel
	}
	return NoMotionLabel
}

// TemperatureText renders the temperature with its unit.
func (r Reading) TemperatureText() string {
	return strconv.Itoa(r.Temperature) + "°C"
}
