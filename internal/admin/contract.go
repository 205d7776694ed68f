package admin

import (
	"context"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

// ModerationStore is the slice of the availability store the dashboard needs
type ModerationStore interface {
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	Confirm(ctx context.Context, reservationID int64) error
	Cancel(ctx context.Context, reservationID int64) error
	Delete(ctx context.Context, reservationID int64) error
	ClearAll(ctx context.Context) error
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
