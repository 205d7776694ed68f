package get_booked_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pixel-crew/twinscissors-booking/internal/api/handlers"
	"github.com/pixel-crew/twinscissors-booking/internal/service/reservations"
)

const msgInvalidDate = "invalid date, expected YYYY-MM-DD"

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

// Handle GET /slots/{date}
//
// The response is a bare JSON array of slot labels so the widget can feed
// it straight into its availability set.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	slots, err := h.service.BookedSlots(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidDate):
			h.logger.Warn("GET /slots/{date} - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /slots/{date} - Failed to fetch slots: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{date} - Returned %d booked slots for date=%s", len(slots), date)
	handlers.RespondJSON(w, http.StatusOK, slots)
}
