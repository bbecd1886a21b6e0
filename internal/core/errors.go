package core

import (
	"fmt"

	"go.uber.org/multierr"
)

// InputValidationError reports every offending name found during the
// Input Normalizer's sense check (spec.md §4.1/§7: "on a name in
// STAFF_CHILD not present in Roles, the stage fails ... list all
// offenders"), following the original Pyomo implementation's assertion
// message (original_source/.../setup.py input_sense_checks) rather than
// surfacing only the first offender.
type InputValidationError struct {
	MissingNames []string
}

func (e *InputValidationError) Error() string {
	if len(e.MissingNames) == 0 {
		return "input validation failed"
	}
	var err error
	for _, name := range e.MissingNames {
		err = multierr.Append(err, fmt.Errorf("staff %q in STAFF_CHILD is not present in Roles", name))
	}
	return fmt.Sprintf("input validation failed: %v", err)
}

// ModelBuildError is returned when the pipeline cannot produce a
// solvable model at all: an empty TIME_BLOCKS or an empty STAFF_CHILD
// (spec.md §7).
type ModelBuildError struct {
	Reason string
}

func (e *ModelBuildError) Error() string {
	return fmt.Sprintf("model build failed: %s", e.Reason)
}

// Status is the solver termination status of spec.md §4.6.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusFeasible   Status = "Feasible"
	StatusInfeasible Status = "Infeasible"
	StatusUnbounded  Status = "Unbounded"
	StatusError      Status = "Error"
)

// SolverInfeasible is returned when the backend reports infeasibility.
// The driver never retries or attempts repair (spec.md §1 Non-goals, §7).
type SolverInfeasible struct {
	Day string
}

func (e *SolverInfeasible) Error() string {
	return fmt.Sprintf("day %s: solver reported infeasible model", e.Day)
}

// SolverError wraps a backend process fault or an unrecognized status.
type SolverError struct {
	Day string
	Err error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("day %s: solver error: %v", e.Day, e.Err)
}

func (e *SolverError) Unwrap() error {
	return e.Err
}
