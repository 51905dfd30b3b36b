package models

import (
	"fmt"
	"strings"
)

// ValidationError carries the full list of violated constraints so the
// caller can show all of them at once instead of fixing one per round trip.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// DuplicatePeriodError signals the one-timesheet-per-week-per-user
// uniqueness violation. Kept distinct from ValidationError so the API can
// offer "edit existing" instead of "fix and retry".
type DuplicatePeriodError struct {
	EmployeeID string
	WeekEnding string
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("timesheet already exists for week ending %s", e.WeekEnding)
}

// DomainError is a business-rule failure whose message is safe to return to
// the client. Store and transport failures stay plain errors and are never
// echoed outside.
type DomainError struct {
	msg string
}

func (e *DomainError) Error() string {
	return e.msg
}

func NewDomainError(format string, args ...interface{}) *DomainError {
	return &DomainError{msg: fmt.Sprintf(format, args...)}
}
