package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrCannotConfirm is returned when the reservation is not in a
	// confirmable status
	ErrCannotConfirm = errors.New("reservation cannot be confirmed")

	// ErrCannotCancel is returned when the reservation is not in a
	// cancellable status
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidReceipt is returned for an empty or oversized receipt upload
	ErrInvalidReceipt = errors.New("invalid receipt")

	// ErrInvalidDate is returned for a malformed availability date
	ErrInvalidDate = errors.New("invalid date")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
