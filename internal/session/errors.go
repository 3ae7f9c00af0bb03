package session

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("session not found")
	ErrInvalidTransition = errors.New("action is not allowed in the current step")
	ErrNoTimeSelected    = errors.New("select a reservation time first")
	ErrNoEligibleTables  = errors.New("no free tables for the selected time, choose another time")
	ErrOccupancyLoading  = errors.New("free tables are still loading, try again")
	ErrPickerClosed      = errors.New("table picker is not open")
	ErrUnknownTable      = errors.New("table not found")
	ErrTableUnavailable  = errors.New("table is not available")
	ErrSubmitInProgress  = errors.New("reservation is already being sent")
	ErrDeliveryFailed    = errors.New("failed to send reservation")
)

// TransitionError is a refused action. It matches ErrInvalidTransition.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Event, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
