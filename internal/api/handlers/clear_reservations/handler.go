package clear_reservations

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

// Handle POST /clear-all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearAll(r.Context()); err != nil {
		h.logger.Error("POST /clear-all - Failed to clear reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /clear-all - All reservations deleted")
	handlers.RespondOK(w)
}
