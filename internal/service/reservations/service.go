package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	storage "github.com/pixel-crew/twinscissors-booking/internal/infra/storage/reservation"
	"github.com/pixel-crew/twinscissors-booking/internal/service/reservations/models"
)

// Service handles dashboard moderation and availability reads over the
// reservations storage
type Service struct {
	repo   ReservationRepository
	logger Logger
}

// NewService creates a new reservations service
func NewService(repo ReservationRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns every reservation in insertion order
func (s *Service) List(ctx context.Context) ([]*models.ReservationResponse, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// BookedSlots returns the slot labels held by active reservations on a date
func (s *Service) BookedSlots(ctx context.Context, date string) ([]string, error) {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		s.logger.Warn("BookedSlots: malformed date %q", date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	slots, err := s.repo.BookedSlots(ctx, date)
	if err != nil {
		s.logger.Error("BookedSlots: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: BookedSlots - repository error: %v", ErrInternal, err)
	}

	return slots, nil
}

// Confirm marks a pending reservation as confirmed
func (s *Service) Confirm(ctx context.Context, id int64) error {
	s.logger.Info("Confirm: confirming reservation id=%d", id)

	reservation, err := s.getByID(ctx, "Confirm", id)
	if err != nil {
		return err
	}

	if !reservation.CanBeConfirmed() {
		s.logger.Warn("Confirm: reservation id=%d cannot be confirmed, status=%s", id, reservation.Status)
		return ErrCannotConfirm
	}

	if err := s.updateStatus(ctx, "Confirm", id, domain.StatusConfirmed); err != nil {
		return err
	}

	s.logger.Info("Confirm: reservation id=%d confirmed", id)
	return nil
}

// Cancel marks a reservation as cancelled, releasing its slot
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	reservation, err := s.getByID(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.updateStatus(ctx, "Cancel", id, domain.StatusCancelled); err != nil {
		return err
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", id)
	return nil
}

// Delete removes a reservation permanently
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting reservation id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: reservation id=%d deleted", id)
	return nil
}

// ClearAll wipes every reservation
func (s *Service) ClearAll(ctx context.Context) error {
	s.logger.Warn("ClearAll: wiping all reservations")

	if err := s.repo.DeleteAll(ctx); err != nil {
		s.logger.Error("ClearAll: repository error: %v", err)
		return fmt.Errorf("%w: ClearAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ClearAll: all reservations deleted")
	return nil
}

// AttachReceipt stores the uploaded payment receipt on a reservation
func (s *Service) AttachReceipt(ctx context.Context, id int64, receipt []byte, filename string) error {
	s.logger.Info("AttachReceipt: attaching receipt to reservation id=%d, size=%d", id, len(receipt))

	if len(receipt) == 0 {
		s.logger.Warn("AttachReceipt: empty receipt for reservation id=%d", id)
		return fmt.Errorf("%w: empty file", ErrInvalidReceipt)
	}
	if len(receipt) > domain.MaxReceiptBytes {
		s.logger.Warn("AttachReceipt: receipt too large for reservation id=%d: %d bytes", id, len(receipt))
		return fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidReceipt, domain.MaxReceiptBytes)
	}

	if err := s.repo.AttachReceipt(ctx, id, receipt, filename); err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("AttachReceipt: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("AttachReceipt: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: AttachReceipt - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AttachReceipt: receipt attached to reservation id=%d", id)
	return nil
}

// Helpers

func (s *Service) getByID(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

func (s *Service) updateStatus(ctx context.Context, op string, id int64, status domain.ReservationStatus) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d disappeared during update", op, id)
			return ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}
