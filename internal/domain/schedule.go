package domain

import (
	"time"
)

// Schedule is the immutable business configuration injected into the slot
// validator and the session state machine at construction. It replaces the
// ambient globals the widget would otherwise reach for.
type Schedule struct {
	Slots           []string       // ordered daily grid
	AllowedWeekdays []time.Weekday // only these days accept bookings
}

// DefaultSchedule returns the salon's fixed schedule: the hourly grid from
// DailySlots on Tuesdays, Wednesdays and Thursdays.
func DefaultSchedule() Schedule {
	return Schedule{
		Slots:           DailySlots,
		AllowedWeekdays: AllowedWeekdays,
	}
}

// WeekdayAllowed reports whether the weekday accepts bookings
func (s Schedule) WeekdayAllowed(day time.Weekday) bool {
	for _, d := range s.AllowedWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ValidSlot reports whether the label belongs to the daily grid
func (s Schedule) ValidSlot(label string) bool {
	for _, l := range s.Slots {
		if l == label {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateFormat, date)
}

// SlotStart returns the wall-clock start of a slot label on the given date
func SlotStart(date time.Time, label string) (time.Time, error) {
	t, err := time.Parse(SlotFormat, label)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
