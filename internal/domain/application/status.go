package application

import "fmt"

type Status string

const (
	StatusApplied   Status = "applied"
	StatusReviewing Status = "reviewing"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// legalTransitions is the single authoritative transition table.
// accepted, rejected and withdrawn are terminal: no outgoing entries.
var legalTransitions = map[Status][]Status{
	StatusApplied:   {StatusReviewing, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusReviewing: {StatusAccepted, StatusRejected, StatusWithdrawn},
}

// ParseStatus converts a raw string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusApplied, StatusReviewing, StatusAccepted, StatusRejected, StatusWithdrawn:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanTransition reports whether from → to is permitted by the table.
func CanTransition(from, to Status) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(s Status) bool { return len(legalTransitions[s]) == 0 }
