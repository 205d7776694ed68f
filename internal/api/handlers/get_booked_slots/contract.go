package get_booked_slots

import "context"

type ReservationsService interface {
	BookedSlots(ctx context.Context, date string) ([]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
