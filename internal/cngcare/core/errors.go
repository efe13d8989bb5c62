package core

import (
	"errors"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	// ErrPreconditionFailed is returned when a report is requested before
	// both checks have been run in the session.
	ErrPreconditionFailed = errors.New("please complete both the maintenance and safety check first")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionLimit    = errors.New("too many active sessions")
	ErrRateLimited     = errors.New("report rate limit exceeded")
	ErrHistoryDisabled = errors.New("report history is disabled")
)

// InvalidInputError carries the field errors of a rejected form submission.
type InvalidInputError struct {
	Errs field.ErrorList
}

func (e *InvalidInputError) Error() string {
	return e.Errs.ToAggregate().Error()
}

// Invalid wraps errs as an *InvalidInputError, or returns nil when errs is empty.
func Invalid(errs field.ErrorList) error {
	if len(errs) == 0 {
		return nil
	}
	return &InvalidInputError{Errs: errs}
}
