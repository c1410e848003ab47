package hal

import "strings"

// Shared helpers used by GPIO code.

// ParsePull converts a string to a Pull.
// Accepts: "up", "down", "none", plus the pullup/pulldown spellings.
func ParsePull(v string) Pull {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "up", "pullup":
		return PullUp
	case "down", "pulldown":
		return PullDown
	default:
		return PullNone
	}
}

func PullString(p Pull) string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "none"
	}
}

func DirectionString(d Direction) string {
	if d == Output {
		return "output"
	}
	return "input"
}

func LevelString(high bool) string {
	if high {
		return "high"
	}
	return "low"
}
