package domain

import "time"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	SlotFormat = "03:04 PM"   // 12-hour slot label, e.g. "09:00 AM"
)

// Business validation constants
const (
	MinNameLength   = 3
	PhoneDigits     = 10
	MaxReceiptBytes = 10 << 20 // 10 MB
)

// DailySlots is the fixed ordered grid of bookable windows for one day.
// This is configuration, not derived data: the grid is the same for every
// date, hourly from opening to the last evening window.
var DailySlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
	"06:00 PM",
	"07:00 PM",
}

// AllowedWeekdays are the only days of the week that accept bookings.
var AllowedWeekdays = []time.Weekday{
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
}
