package risk

// Level is the three-tier classification of a Score.
type Level int

const (
	Safe Level = iota
	Warning
	Danger
)

// Band lower bounds; each boundary belongs to the higher band.
const (
	WarningThreshold Score = 40
	DangerThreshold  Score = 70
)

// Classify returns the band s falls into. Scores outside the valid range
// fall into the nearest band.
func Classify(s Score) Level {
	switch {
	case s >= DangerThreshold:
		return Danger
	case s >= WarningThreshold:
		return Warning
	default:
		return Safe
	}
}

func (l Level) String() string {
	switch l {
	case Safe:
		return "safe"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	default:
		return "unknown"
	}
}

// Title is the status-panel caption for l.
func (l Level) Title() string {
	switch l {
	case Safe:
		return "SAFE"
	case Warning:
		return "CAUTION"
	case Danger:
		return "DANGER"
	default:
		return "UNKNOWN"
	}
}
