package hours

import (
	"errors"

	"tavrika-widget/internal/parse"
)

var (
	ErrEmptyTime       = errors.New("time is not selected")
	ErrTimePassed      = errors.New("selected time has already passed")
	ErrOutsideHours    = errors.New("selected time is outside business hours")
	ErrBeforeFirstSlot = errors.New("selected time is earlier than the first available slot today")
)

// ValidationError is a rejected date/time pick. Reason is one of the Err*
// sentinels above.
type ValidationError struct {
	Reason error
	Time   parse.Clock
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return e.Reason.Error() + " (" + e.Detail + ")"
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}
