package availabilitystore

import "errors"

var (
	// ErrSlotConflict is returned when the chosen slot is already booked,
	// detected either by the pre-commit re-check or by the store itself
	ErrSlotConflict = errors.New("availabilitystore client: slot already booked")

	// ErrStore is returned on network failure or an unexpected store rejection
	ErrStore = errors.New("availabilitystore client: store error")

	// ErrPrecondition is returned when a call is attempted with state that
	// should be impossible through the normal flow (e.g. attaching a receipt
	// before a reservation exists). Indicates a state machine bug.
	ErrPrecondition = errors.New("availabilitystore client: precondition failed")

	// ErrInternal is returned on internal client errors
	ErrInternal = errors.New("availabilitystore client: internal error")
)
