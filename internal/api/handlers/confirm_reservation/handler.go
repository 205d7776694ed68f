package confirm_reservation

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
	msgCannotConfirm        = "reservation cannot be confirmed"
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

// Handle POST /confirm/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /confirm/{id} - Invalid reservation id %q: %v", idStr, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.Confirm(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /confirm/{id} - Reservation not found: id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrCannotConfirm):
			h.logger.Warn("POST /confirm/{id} - Cannot confirm: id=%d", id)
			handlers.RespondConflict(w, msgCannotConfirm)

		default:
			h.logger.Error("POST /confirm/{id} - Failed to confirm: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /confirm/{id} - Reservation confirmed: id=%d", id)
	handlers.RespondOK(w)
}
