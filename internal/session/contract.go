package session

import (
	"context"
	"time"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	"github.com/pixel-crew/twinscissors-booking/internal/integrations/availabilitystore"
)

// ProtocolClient is the reservation protocol against the availability store
type ProtocolClient interface {
	// FetchBookedSlots returns the booked set for a date, failing open to empty
	FetchBookedSlots(ctx context.Context, date string) domain.SlotSet
	// VerifyAndCommit re-checks availability and creates the reservation
	VerifyAndCommit(ctx context.Context, draft *domain.BookingDraft) (*availabilitystore.CommitResult, error)
	// AttachReceipt uploads the receipt artifact for a created reservation
	AttachReceipt(ctx context.Context, reservationID int64, artifact []byte, filename string) error
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
