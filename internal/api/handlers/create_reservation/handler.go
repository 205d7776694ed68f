package create_reservation

import (
	"errors"
	"net/http"

	"github.com/pixel-crew/twinscissors-booking/internal/api/handlers"
	createReservation "github.com/pixel-crew/twinscissors-booking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date, expected YYYY-MM-DD"
	msgSlotAlreadyBooked  = "slot already booked"
	msgInvalidInput       = "invalid booking details"
	msgInvalidSlot        = "invalid time slot"
	msgDateNotBookable    = "date is not available for booking"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /book - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotAlreadyBooked):
			// The widget treats 409 as "return to schedule selection"
			h.logger.Warn("POST /book - Slot conflict: date=%s slot=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /book - Date not bookable: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateNotBookable)

		case errors.Is(err, createReservation.ErrInvalidSlot):
			h.logger.Warn("POST /book - Invalid slot: date=%s slot=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /book - Failed to create reservation: date=%s slot=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /book - Reservation created: id=%d reference=%s date=%s slot=%s",
		result.ID, result.Reference, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
