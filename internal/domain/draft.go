package domain

// BookingDraft is the mutable in-progress reservation, owned exclusively
// by one active booking session.
//
// Invariants:
//   - Slot is only ever set to a label that was selectable at selection time
//     (not past, not booked, not on a disallowed weekday).
//   - ReservationID is set at most once, by a successful commit, and is
//     required before a receipt can be attached.
type BookingDraft struct {
	Service *Service
	Date    string // YYYY-MM-DD, empty = unset
	Slot    string // slot label, empty = unset

	Name  string
	Phone string
	Email string

	ReservationID int64  // 0 until the store accepts the commit
	Reference     string // assigned together with ReservationID

	Receipt []byte // attached only after a successful commit
}

// Reset clears the draft back to its initial empty state
func (d *BookingDraft) Reset() {
	*d = BookingDraft{}
}

// HasReservation returns true once the store has issued a reservation id
func (d *BookingDraft) HasReservation() bool {
	return d.ReservationID != 0
}
