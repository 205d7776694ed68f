package create_reservation

import "time"

// Request is the create-reservation payload after transport parsing
type Request struct {
	ServiceName  string    // catalog entry display name
	ServicePrice int64     // integer LKR
	Date         time.Time // booking day, time part ignored
	Slot         string    // slot label, e.g. "10:00 AM"
	Name         string
	Phone        string
	Email        string
}

// Response carries the identifiers the store issues on success
type Response struct {
	ID        int64
	Reference string // human-presentable code for bank transfer matching
	Status    string
	CreatedAt time.Time
}
