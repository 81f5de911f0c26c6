package domain

import (
	"fmt"
	"strings"
)

// Outcome is the terminal classification of one webhook invocation.
type Outcome string

const (
	OutcomeProcessed        Outcome = "PROCESSED"
	OutcomeAlreadyProcessed Outcome = "ALREADY_PROCESSED"
	OutcomeNeedsReview      Outcome = "NEEDS_REVIEW"
	OutcomeRemoteRejected   Outcome = "REMOTE_REJECTED"
	OutcomeUnauthorized     Outcome = "UNAUTHORIZED"
	OutcomeInternalError    Outcome = "INTERNAL_ERROR"
)

func (o Outcome) String() string { return string(o) }

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeProcessed, OutcomeAlreadyProcessed, OutcomeNeedsReview,
		OutcomeRemoteRejected, OutcomeUnauthorized, OutcomeInternalError:
		return true
	}
	return false
}

func ParseOutcomeFromString(s string) (Outcome, error) {
	o := Outcome(strings.ToUpper(strings.TrimSpace(s)))
	if !o.IsValid() {
		return "", fmt.Errorf("%w: invalid outcome %q", ErrValidation, s)
	}
	return o, nil
}

// Result is what one pipeline invocation terminates with. Exactly one Result
// is produced per delivery; the HTTP boundary maps Outcome to a status code
// and Err carries the underlying fault for logging on internal errors.
type Result struct {
	Outcome    Outcome
	TrackingID string
	Reason     string
	Err        error
}
