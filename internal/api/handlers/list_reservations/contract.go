package list_reservations

import (
	"context"

	"github.com/pixel-crew/twinscissors-booking/internal/service/reservations/models"
)

type ReservationsService interface {
	List(ctx context.Context) ([]*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
