package delete_reservation

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

// Handle POST /delete/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /delete/{id} - Invalid reservation id %q: %v", idStr, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /delete/{id} - Reservation not found: id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		default:
			h.logger.Error("POST /delete/{id} - Failed to delete: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /delete/{id} - Reservation deleted: id=%d", id)
	handlers.RespondOK(w)
}
