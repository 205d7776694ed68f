package domain

import "time"

// ReservationStatus represents the moderation status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a committed booking as the store owns it.
// Status transitions happen only through explicit store calls; the widget
// never infers them locally.
type Reservation struct {
	ID           int64
	ServiceName  string
	ServicePrice int64
	Date         string // YYYY-MM-DD
	Slot         string // slot label, e.g. "10:00 AM"
	Name         string
	Phone        string
	Email        string
	Status       ReservationStatus
	Reference    string // human-presentable code for bank transfer matching
	HasReceipt   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the reservation can be confirmed
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// ActiveStatuses lists statuses that block a slot from being re-booked
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
