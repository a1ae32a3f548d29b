// Package pipeline holds the application status state machine.
//
// saved -> applied -> interviewing -> offer -> hired
// every non-terminal status may also move to rejected;
// hired and rejected are terminal.
package pipeline

import "fmt"

type Status string

const (
	StatusSaved        Status = "saved"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusHired        Status = "hired"
	StatusRejected     Status = "rejected"
)

var next = map[Status][]Status{
	StatusSaved:        {StatusApplied, StatusRejected},
	StatusApplied:      {StatusInterviewing, StatusRejected},
	StatusInterviewing: {StatusOffer, StatusRejected},
	StatusOffer:        {StatusHired, StatusRejected},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusHired, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanTransition reports whether from -> to is an allowed move. Terminal
// statuses have no outgoing edges.
func CanTransition(from, to Status) bool {
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s Status) bool {
	return s == StatusHired || s == StatusRejected
}
