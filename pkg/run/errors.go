package run

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTriggerNodes is returned when planning a job with no trigger nodes.
	ErrNoTriggerNodes = errors.New("job has no trigger nodes")
	// ErrMissingInputs blocks submission while required fields are unfilled.
	ErrMissingInputs = errors.New("required inputs are missing")
	// ErrReferenceCycle blocks submission when resources reference each other's
	// outputs cyclically.
	ErrReferenceCycle = errors.New("cyclic dependency between node references")
	// ErrInsufficientBalance blocks submission when the total exceeds the
	// available balance.
	ErrInsufficientBalance = errors.New("insufficient balance for run")
	// ErrSubmissionFailed wraps a rejected confirmRun call. The job and its
	// configuration are left exactly as the user had them.
	ErrSubmissionFailed = errors.New("run submission failed")
)

// ValidationError carries the full blocking report for a run that may not
// start, so callers can surface every problem at once.
type ValidationError struct {
	Missing      []string
	CycleNodeIDs []string
	Insufficient bool
	Err          error
}

func (e *ValidationError) Error() string {
	var parts []string

	if len(e.Missing) > 0 {
		parts = append(parts, "missing required inputs: "+strings.Join(e.Missing, ", "))
	}

	if len(e.CycleNodeIDs) > 0 {
		parts = append(parts, "reference cycle: "+strings.Join(e.CycleNodeIDs, " -> "))
	}

	if e.Insufficient {
		parts = append(parts, "insufficient balance")
	}

	if len(parts) == 0 {
		return e.Err.Error()
	}

	return fmt.Sprintf("run blocked: %s", strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
