package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	storage "github.com/pixel-crew/twinscissors-booking/internal/infra/storage/reservation"
)

// UseCase is the store-side commit arbiter: it decides, under a
// serializable transaction, whether a reservation may take its slot.
type UseCase struct {
	repo         ReservationRepository
	txManager    TransactionManager
	schedule     domain.Schedule
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the create-reservation use case
func NewUseCase(
	repo ReservationRepository,
	txManager TransactionManager,
	schedule domain.Schedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		txManager:    txManager,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute validates the request and creates the reservation.
//
// The availability check and the insert run inside one serializable
// transaction, and the partial unique index backs them up: even when two
// requests for the same slot interleave, exactly one wins. The loser gets
// ErrSlotAlreadyBooked, which the transport surfaces as a conflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date := req.Date.Format(domain.DateFormat)
	uc.logger.Info("CreateReservation: service=%q date=%s slot=%s", req.ServiceName, date, req.Slot)

	// 1. Field validation, same rules the widget applies locally.
	if err := validateRequest(req, uc.schedule); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Schedule validation against the store's clock.
	now := uc.timeProvider.Now()
	if err := validateSchedule(req, now, uc.schedule); err != nil {
		uc.logger.Warn("CreateReservation: schedule validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 3. Availability check + insert as one serializable unit.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booked, err := uc.repo.BookedSlots(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to load booked slots: %v", err)
			return fmt.Errorf("%w: failed to load booked slots: %v", ErrInternal, err)
		}

		if domain.NewSlotSet(booked).Contains(req.Slot) {
			uc.logger.Warn("CreateReservation: slot %s on %s already booked", req.Slot, date)
			return ErrSlotAlreadyBooked
		}

		created, err := uc.repo.Create(txCtx, &domain.Reservation{
			ServiceName:  req.ServiceName,
			ServicePrice: req.ServicePrice,
			Date:         date,
			Slot:         req.Slot,
			Name:         req.Name,
			Phone:        req.Phone,
			Email:        req.Email,
			Status:       domain.StatusPending,
			Reference:    newReference(),
		})
		if err != nil {
			if errors.Is(err, storage.ErrSlotTaken) {
				// The unique index fired: we lost the race after the check.
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("CreateReservation: failed to insert reservation: %v", err)
			return fmt.Errorf("%w: failed to insert reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: reservation id=%d reference=%s created", result.ID, result.Reference)

	return &Response{
		ID:        result.ID,
		Reference: result.Reference,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
	}, nil
}

// newReference issues the human-presentable code customers quote on their
// bank transfer
func newReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TS-" + strings.ToUpper(raw[:6])
}
