package domain

import (
	"errors"
	"fmt"
)

// Conflict tags let callers distinguish "retry with different input" from
// "try again later" without parsing the message.
const (
	ConflictSlotTaken      = "SLOT_TAKEN"
	ConflictDriverBusy     = "DRIVER_BUSY"
	ConflictVehicleBusy    = "VEHICLE_BUSY"
	ConflictParcelCapacity = "PARCEL_CAPACITY_EXCEEDED"
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

// ConflictError carries a machine-readable Tag and, for driver/vehicle
// double-booking, the trip already holding the resource.
type ConflictError struct {
	Resource       string
	Tag            string
	Msg            string
	ConflictTripID string
	Err            error
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

// StateError rejects an illegal lifecycle move (booking transitions,
// publishing a non-draft trip, confirming an expired hold).
type StateError struct {
	Resource string
	From     string
	To       string
	Msg      string
	Err      error
}

func (e StateError) Error() string {
	if e.From != "" && e.To != "" {
		return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
	}
	if e.Msg != "" {
		return e.Msg
	}
	return "illegal state transition"
}

func (e StateError) Unwrap() error { return e.Err }

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

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsState(err error) bool {
	var target StateError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// AsConflict extracts the ConflictError when present.
func AsConflict(err error) (ConflictError, bool) {
	var target ConflictError
	ok := errors.As(err, &target)
	return target, ok
}
