package slots

import (
	"time"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

// State describes why a slot is or is not selectable on a given date
type State string

const (
	Selectable      State = "selectable"
	DisabledWeekday State = "disabled-weekday"
	DisabledPast    State = "disabled-past"
	DisabledBooked  State = "disabled-booked"
)

// IsSelectable reports whether the state allows selection
func (s State) IsSelectable() bool {
	return s == Selectable
}

// Compute maps every candidate slot label to its state for the given date.
//
// Rules, first match wins:
//  1. Disallowed weekday disables the whole day, regardless of time or
//     booked state.
//  2. On the current calendar date, a slot whose start is at or before now
//     is disabled as past.
//  3. A label present in booked is disabled as booked.
//  4. Otherwise the slot is selectable.
//
// Labels that fail to parse are treated as past: an unparseable label can
// never be selected.
func Compute(date time.Time, now time.Time, candidates []string, booked domain.SlotSet, allowed []time.Weekday) map[string]State {
	result := make(map[string]State, len(candidates))

	dayAllowed := weekdayAllowed(date.Weekday(), allowed)
	today := isSameDay(date, now)

	for _, label := range candidates {
		switch {
		case !dayAllowed:
			result[label] = DisabledWeekday
		case today && !startsAfter(date, label, now):
			result[label] = DisabledPast
		case booked.Contains(label):
			result[label] = DisabledBooked
		default:
			result[label] = Selectable
		}
	}

	return result
}

// startsAfter reports whether the slot's wall-clock start on date is
// strictly after now
func startsAfter(date time.Time, label string, now time.Time) bool {
	start, err := domain.SlotStart(date, label)
	if err != nil {
		return false
	}
	return start.After(now)
}

func weekdayAllowed(day time.Weekday, allowed []time.Weekday) bool {
	for _, d := range allowed {
		if d == day {
			return true
		}
	}
	return false
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
