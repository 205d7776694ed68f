package create_reservation

import (
	"context"
	"time"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

// ReservationRepository is the storage the arbiter needs
type ReservationRepository interface {
	// BookedSlots returns slot labels held by active reservations on a date
	BookedSlots(ctx context.Context, date string) ([]string, error)
	// Create inserts the reservation; ErrSlotTaken on a unique-index loss
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// TransactionManager runs the availability check and the insert as one
// serializable unit
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider interface for obtaining the current time (for testing)
type TimeProvider interface {
	Now() time.Time
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
