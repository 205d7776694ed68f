package upload_receipt

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pixel-crew/twinscissors-booking/internal/api/handlers"
	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	"github.com/pixel-crew/twinscissors-booking/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgMissingReceipt       = "multipart field 'receipt' is required"
	msgInvalidReceipt       = "invalid receipt file"
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

// Handle POST /upload-receipt/{id}
//
// Expects a multipart form with the artifact under the "receipt" field.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /upload-receipt/{id} - Invalid reservation id %q: %v", idStr, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxReceiptBytes+4096)
	if err := r.ParseMultipartForm(int64(domain.MaxReceiptBytes)); err != nil {
		h.logger.Warn("POST /upload-receipt/{id} - Failed to parse multipart form: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgMissingReceipt)
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		h.logger.Warn("POST /upload-receipt/{id} - Missing receipt field: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgMissingReceipt)
		return
	}
	defer file.Close()

	artifact, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("POST /upload-receipt/{id} - Failed to read receipt: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	if err := h.service.AttachReceipt(r.Context(), id, artifact, header.Filename); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /upload-receipt/{id} - Reservation not found: id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrInvalidReceipt):
			h.logger.Warn("POST /upload-receipt/{id} - Invalid receipt: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidReceipt)

		default:
			h.logger.Error("POST /upload-receipt/{id} - Failed to attach receipt: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /upload-receipt/{id} - Receipt attached: id=%d, file=%s, size=%d",
		id, header.Filename, len(artifact))
	handlers.RespondOK(w)
}
