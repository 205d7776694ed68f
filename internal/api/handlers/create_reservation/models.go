package create_reservation

import (
	"time"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	createReservation "github.com/pixel-crew/twinscissors-booking/internal/usecase/create_reservation"
)

// BookRequest is the HTTP request model
type BookRequest struct {
	Service string `json:"service"`
	Price   int64  `json:"price"`
	Date    string `json:"date"` // "2026-09-02"
	Time    string `json:"time"` // "10:00 AM"
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// BookResponse is the HTTP response model
type BookResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *BookRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		ServiceName:  r.Service,
		ServicePrice: r.Price,
		Date:         date,
		Slot:         r.Time,
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *BookResponse {
	return &BookResponse{
		ID:        resp.ID,
		Reference: resp.Reference,
	}
}
