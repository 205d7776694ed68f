package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pixel-crew/twinscissors-booking/internal/api/handlers"
	"github.com/pixel-crew/twinscissors-booking/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgReservationNotFound  = "reservation not found"
	msgCannotCancel         = "reservation cannot be cancelled"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /cancel/{id}
//
// Cancelling releases the (date, slot) pair: the partial unique index only
// covers active reservations.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /cancel/{id} - Invalid reservation id %q: %v", idStr, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /cancel/{id} - Reservation not found: id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("POST /cancel/{id} - Cannot cancel: id=%d", id)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /cancel/{id} - Failed to cancel: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cancel/{id} - Reservation cancelled: id=%d", id)
	handlers.RespondOK(w)
}
