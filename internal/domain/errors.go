package domain

import "errors"

// Sentinels for errors.Is checks across layers. The HTTP layer maps them to
// status codes (404, 409); everything else surfaces as 500.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// NotFoundError carries the resource name so boundaries can render
// messages like "Property not found" without string assembly at call sites.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string        { return e.Resource + " not found" }
func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError is a rejected write that collides with existing state,
// e.g. a double-booked viewing slot.
type ConflictError struct {
	Msg string
}

func (e ConflictError) Error() string        { return e.Msg }
func (e ConflictError) Is(target error) bool { return target == ErrConflict }

// ValidationError is malformed or missing input caught at the boundary
// before any persistence work happens.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

func Invalid(msg string) error { return ValidationError{Msg: msg} }

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
