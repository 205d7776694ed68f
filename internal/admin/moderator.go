package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

var (
	// ErrWrongPasscode is returned when the shared dashboard passcode does
	// not match
	ErrWrongPasscode = errors.New("admin: wrong passcode")
)

// Moderator is the admin dashboard client: it mirrors the store's
// reservation list and applies moderation transitions.
//
// Local state mutates only after the store acknowledges the request, using
// the same transition applied remotely, so local and remote never diverge
// silently. There is no optimistic rollback because no optimistic update
// is ever applied.
type Moderator struct {
	store    ModerationStore
	passcode string
	logger   Logger

	mu   sync.Mutex
	list []domain.Reservation
}

// NewModerator creates an admin client guarded by the shared passcode.
// The passcode gate is a convenience latch for the dashboard, not a
// security boundary.
func NewModerator(store ModerationStore, passcode string, logger Logger) *Moderator {
	return &Moderator{
		store:    store,
		passcode: passcode,
		logger:   logger,
	}
}

// VerifyPasscode checks the shared static dashboard passcode
func (m *Moderator) VerifyPasscode(code string) error {
	if subtle.ConstantTimeCompare([]byte(code), []byte(m.passcode)) != 1 {
		m.logger.Warn("Admin: wrong passcode attempt")
		return ErrWrongPasscode
	}
	return nil
}

// Refresh reloads the local list from the store, in the store's own order
func (m *Moderator) Refresh(ctx context.Context) ([]domain.Reservation, error) {
	reservations, err := m.store.ListReservations(ctx)
	if err != nil {
		m.logger.Error("Admin: failed to list reservations: %v", err)
		return nil, err
	}

	m.mu.Lock()
	m.list = reservations
	m.mu.Unlock()

	m.logger.Info("Admin: loaded %d reservations", len(reservations))
	return m.snapshot(), nil
}

// List returns the current local copy of the reservation list
func (m *Moderator) List() []domain.Reservation {
	return m.snapshot()
}

// Confirm marks a reservation confirmed. The request is issued even when
// the id is absent from the local list; in that case the local list simply
// has no matching entry to update.
func (m *Moderator) Confirm(ctx context.Context, id int64) error {
	if err := m.store.Confirm(ctx, id); err != nil {
		m.logger.Error("Admin: confirm id=%d failed: %v", id, err)
		return err
	}
	m.setStatus(id, domain.StatusConfirmed)
	m.logger.Info("Admin: reservation id=%d confirmed", id)
	return nil
}

// Cancel marks a reservation cancelled, freeing its slot
func (m *Moderator) Cancel(ctx context.Context, id int64) error {
	if err := m.store.Cancel(ctx, id); err != nil {
		m.logger.Error("Admin: cancel id=%d failed: %v", id, err)
		return err
	}
	m.setStatus(id, domain.StatusCancelled)
	m.logger.Info("Admin: reservation id=%d cancelled", id)
	return nil
}

// Delete removes a reservation
func (m *Moderator) Delete(ctx context.Context, id int64) error {
	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Error("Admin: delete id=%d failed: %v", id, err)
		return err
	}

	m.mu.Lock()
	filtered := m.list[:0]
	for _, r := range m.list {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	m.list = filtered
	m.mu.Unlock()

	m.logger.Info("Admin: reservation id=%d deleted", id)
	return nil
}

// ClearAll removes every reservation; the local list empties regardless of
// its prior contents
func (m *Moderator) ClearAll(ctx context.Context) error {
	if err := m.store.ClearAll(ctx); err != nil {
		m.logger.Error("Admin: clear-all failed: %v", err)
		return err
	}

	m.mu.Lock()
	m.list = nil
	m.mu.Unlock()

	m.logger.Info("Admin: all reservations cleared")
	return nil
}

// setStatus applies a status transition to the local entry, if present
func (m *Moderator) setStatus(id int64, status domain.ReservationStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.list {
		if m.list[i].ID == id {
			m.list[i].Status = status
			return
		}
	}
}

func (m *Moderator) snapshot() []domain.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Reservation(nil), m.list...)
}
