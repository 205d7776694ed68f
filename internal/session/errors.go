package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidTransition is returned when an event is not legal in the
	// session's current state
	ErrInvalidTransition = errors.New("session: invalid transition")

	// ErrServiceNotFound is returned when the selected service id is not in
	// the catalog
	ErrServiceNotFound = errors.New("session: service not found")

	// ErrInvalidDate is returned when the date is not a valid YYYY-MM-DD day
	ErrInvalidDate = errors.New("session: invalid date")

	// ErrNoDateSelected is returned when a slot is picked before a date
	ErrNoDateSelected = errors.New("session: no date selected")

	// ErrSlotNotSelectable is returned when the picked slot is past, booked,
	// on a disallowed weekday, or not part of the daily grid
	ErrSlotNotSelectable = errors.New("session: slot not selectable")

	// ErrScheduleIncomplete is returned when leaving schedule selection
	// without both date and slot set
	ErrScheduleIncomplete = errors.New("session: date and slot are required")

	// ErrCommitInFlight is returned when a second commit is attempted while
	// one is already pending for this draft
	ErrCommitInFlight = errors.New("session: commit already in flight")
)

// ValidationErrors maps identity field names to user-facing messages.
// A non-empty map blocks advancement past identity capture; it is resolved
// in place and never reaches the store.
type ValidationErrors map[string]string

// Error implements the error interface
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("session: validation failed: %s", strings.Join(fields, ", "))
}
