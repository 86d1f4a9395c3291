package escalation

// Level is the discrete risk tier assigned to a user turn. Levels are
// ordered; comparisons use the underlying int.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelModerate
	LevelSevere
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelLow:
		return "LOW"
	case LevelModerate:
		return "MODERATE"
	case LevelSevere:
		return "SEVERE"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "NONE"
	}
}

// Urgency of a human handoff request.
type Urgency string

const (
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

// urgencyFor maps a level to its handoff urgency. Only SEVERE and CRITICAL
// create handoffs, so lower levels return "".
func urgencyFor(level Level) Urgency {
	switch level {
	case LevelSevere:
		return UrgencyUrgent
	case LevelCritical:
		return UrgencyEmergency
	default:
		return ""
	}
}

func urgencyRank(u Urgency) int {
	switch u {
	case UrgencyUrgent:
		return 1
	case UrgencyEmergency:
		return 2
	default:
		return 0
	}
}
