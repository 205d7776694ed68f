package reservation

import "errors"

var (
	// ErrReservationNotFound is returned when no reservation matches the id
	ErrReservationNotFound = errors.New("storage: reservation not found")

	// ErrSlotTaken is returned when the active-slot unique index rejects an
	// insert: another reservation already holds the (date, slot) pair
	ErrSlotTaken = errors.New("storage: slot already taken")

	// ErrBuildQuery is returned when the query builder fails
	ErrBuildQuery = errors.New("storage: failed to build query")

	// ErrExecQuery is returned when query execution fails
	ErrExecQuery = errors.New("storage: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("storage: failed to scan row")
)
