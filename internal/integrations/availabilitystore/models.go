package availabilitystore

import (
	"time"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

// CommitResult carries the identifiers issued by the store on a successful
// create-reservation call
type CommitResult struct {
	ReservationID int64
	Reference     string
}

// bookRequest is the POST /book payload
type bookRequest struct {
	Service string `json:"service"`
	Price   int64  `json:"price"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// bookResponse is the POST /book success body
type bookResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
}

// errorResponse is the store's rejection body
type errorResponse struct {
	Error string `json:"error"`
}

// reservationPayload is one GET /bookings record
type reservationPayload struct {
	ID         int64  `json:"id"`
	Service    string `json:"service"`
	Price      int64  `json:"price"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	Reference  string `json:"reference"`
	HasReceipt bool   `json:"hasReceipt"`
	CreatedAt  string `json:"createdAt"`
}

// toDomain converts a wire record into the domain model
func (p *reservationPayload) toDomain() domain.Reservation {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)
	return domain.Reservation{
		ID:           p.ID,
		ServiceName:  p.Service,
		ServicePrice: p.Price,
		Date:         p.Date,
		Slot:         p.Time,
		Name:         p.Name,
		Phone:        p.Phone,
		Email:        p.Email,
		Status:       domain.ReservationStatus(p.Status),
		Reference:    p.Reference,
		HasReceipt:   p.HasReceipt,
		CreatedAt:    createdAt,
	}
}
