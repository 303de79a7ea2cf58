package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// CapacityError reports a reservation that asked for more seats than the
// schedule has left. Remaining carries the current count so the caller can
// suggest a smaller request.
type CapacityError struct {
	ScheduleID int64
	Requested  int
	Remaining  int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("only %d seats available on schedule %d (requested %d)", e.Remaining, e.ScheduleID, e.Requested)
}

// ConflictError marks a lost race or an illegal state transition. Callers
// should retry the search/reserve cycle rather than treat it as permanent.
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// ConsistencyError means an internal invariant broke, e.g. a booking row
// with no payment row. It must never happen in normal operation and is
// surfaced loudly, never swallowed.
type ConsistencyError struct {
	Msg string
	Err error
}

func (e ConsistencyError) Error() string {
	if e.Msg != "" {
		return "consistency violation: " + e.Msg
	}
	return "consistency violation"
}

func (e ConsistencyError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsCapacity(err error) bool {
	var target CapacityError
	return errors.As(err, &target)
}

// AsCapacity unwraps a CapacityError so callers can read Remaining.
func AsCapacity(err error) (CapacityError, bool) {
	var target CapacityError
	ok := errors.As(err, &target)
	return target, ok
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsConsistency(err error) bool {
	var target ConsistencyError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
