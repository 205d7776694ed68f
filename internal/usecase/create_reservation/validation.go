package create_reservation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]*$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// validateRequest applies the same field rules the widget enforces
// client-side; the store re-validates because it trusts no caller
func validateRequest(req *Request, schedule domain.Schedule) error {
	if req.ServiceName == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}
	if req.ServicePrice < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !schedule.ValidSlot(req.Slot) {
		return fmt.Errorf("%w: unknown slot %q", ErrInvalidSlot, req.Slot)
	}
	if !nameRe.MatchString(req.Name) || len(strings.TrimSpace(req.Name)) < domain.MinNameLength {
		return fmt.Errorf("%w: invalid name", ErrInvalidInput)
	}
	if !phoneRe.MatchString(req.Phone) {
		return fmt.Errorf("%w: phone must be exactly %d digits", ErrInvalidInput, domain.PhoneDigits)
	}
	if !emailRe.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	return nil
}

// validateSchedule rejects dates outside the booking days and slots that
// have already started
func validateSchedule(req *Request, now time.Time, schedule domain.Schedule) error {
	if isDateInPast(req.Date, now) {
		return ErrInvalidDate
	}
	if !schedule.WeekdayAllowed(req.Date.Weekday()) {
		return fmt.Errorf("%w: bookings are not accepted on %s", ErrInvalidDate, req.Date.Weekday())
	}

	if isSameDay(req.Date, now) {
		start, err := domain.SlotStart(req.Date, req.Slot)
		if err != nil {
			return fmt.Errorf("%w: unparseable slot %q", ErrInvalidSlot, req.Slot)
		}
		if !start.After(now) {
			return fmt.Errorf("%w: slot %s has already started", ErrInvalidSlot, req.Slot)
		}
	}
	return nil
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
