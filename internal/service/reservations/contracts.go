package reservations

import (
	"context"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

// ReservationRepository is the reservations storage interface
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListAll(ctx context.Context) ([]*domain.Reservation, error)
	BookedSlots(ctx context.Context, date string) ([]string, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	AttachReceipt(ctx context.Context, id int64, receipt []byte, filename string) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

// Logger is the logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
