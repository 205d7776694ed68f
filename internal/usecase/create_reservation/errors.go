package create_reservation

import "errors"

var (
	// ErrSlotAlreadyBooked is returned when an active reservation already
	// holds the requested (date, slot) pair
	ErrSlotAlreadyBooked = errors.New("create_reservation: slot already booked")

	// ErrInvalidDate is returned for malformed, past or closed-weekday dates
	ErrInvalidDate = errors.New("create_reservation: invalid booking date")

	// ErrInvalidSlot is returned when the slot label is not on the daily
	// grid, or has already started on the current date
	ErrInvalidSlot = errors.New("create_reservation: invalid time slot")

	// ErrInvalidInput is returned for malformed payload fields
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal is returned on internal usecase errors
	ErrInternal = errors.New("create_reservation: internal error")
)
