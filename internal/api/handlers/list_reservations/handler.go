package list_reservations

import (
	"net/http"

	"github.com/pixel-crew/twinscissors-booking/internal/api/handlers"
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

// Handle GET /bookings
//
// Returns every reservation in insertion order as a bare JSON array; the
// dashboard renders it as-is.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Returned %d reservations", len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}
