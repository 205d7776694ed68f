package models

import (
	"time"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

// Response models

// ReservationResponse is a single reservation as exposed to the dashboard
type ReservationResponse struct {
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

// FromDomainReservation converts a domain reservation to the response model
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:         r.ID,
		Service:    r.ServiceName,
		Price:      r.ServicePrice,
		Date:       r.Date,
		Time:       r.Slot,
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		Status:     string(r.Status),
		Reference:  r.Reference,
		HasReceipt: r.HasReceipt,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList converts a list of domain reservations
func FromDomainReservationList(list []*domain.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return out
}
