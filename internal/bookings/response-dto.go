package bookings

import (
	"time"

	"tourly/internal/payments"
)

// User-facing notices, kept verbatim from the product copy.
const (
	NoticeSignInRequired  = "Для участия в туре необходимо войти в аккаунт"
	NoticeFillRequired    = "Пожалуйста, заполните все обязательные поля"
	NoticeNoDates         = "К сожалению, на данный момент нет доступных дат для этого тура."
	NoticeBookingComplete = "Бронирование успешно завершено! Организатор свяжется с вами в ближайшее время."
)

type DateOptionResponse struct {
	ID                  string    `json:"id"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	DurationDays        int       `json:"duration_days"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	Remaining           int       `json:"remaining"`
	Price               int64     `json:"price"`
}

// WizardResponse is the wizard state as served to the client. Derived
// values (total price, remaining capacity, the count domain) are
// recomputed from the session on every response, never stored.
type WizardResponse struct {
	SessionID         string               `json:"session_id"`
	TourID            string               `json:"tour_id"`
	Step              Step                 `json:"step"`
	Dates             []DateOptionResponse `json:"dates"`
	SelectedDateID    string               `json:"selected_date_id,omitempty"`
	ParticipantsCount int                  `json:"participants_count"`
	MaxCount          int                  `json:"max_count"`
	TotalPrice        int64                `json:"total_price"`
	Currency          string               `json:"currency"`
	Contact           ContactInfo          `json:"contact"`
	Notice            string               `json:"notice,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

func (w *Wizard) ToResponse() WizardResponse {
	dates := make([]DateOptionResponse, len(w.Dates))
	for i := range w.Dates {
		o := &w.Dates[i]
		dates[i] = DateOptionResponse{
			ID:                  o.ID.String(),
			StartDate:           o.StartDate,
			EndDate:             o.EndDate,
			DurationDays:        o.DurationDays(),
			MaxParticipants:     o.MaxParticipants,
			CurrentParticipants: o.CurrentParticipants,
			Remaining:           o.Remaining(),
			Price:               o.Price,
		}
	}

	resp := WizardResponse{
		SessionID:         w.SessionID.String(),
		TourID:            w.TourID.String(),
		Step:              w.Step,
		Dates:             dates,
		ParticipantsCount: w.ParticipantsCount,
		TotalPrice:        w.TotalPrice(),
		Currency:          w.Currency,
		Contact:           w.Contact,
		CreatedAt:         w.CreatedAt,
	}

	if selected := w.SelectedDate(); selected != nil {
		resp.SelectedDateID = selected.ID.String()
		resp.MaxCount = selected.Remaining()
	}

	if !w.HasDates() {
		resp.Notice = NoticeNoDates
	}

	return resp
}

type BookingResponse struct {
	ID                string    `json:"id"`
	TourID            string    `json:"tour_id"`
	TourDateID        string    `json:"tour_date_id"`
	ParticipantsCount int       `json:"participants_count"`
	TotalPrice        int64     `json:"total_price"`
	Currency          string    `json:"currency"`
	Status            Status    `json:"status"`
	PaymentDeadline   time.Time `json:"payment_deadline"`
	CreatedAt         time.Time `json:"created_at"`
}

func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:                b.ID.String(),
		TourID:            b.TourID.String(),
		TourDateID:        b.TourDateID.String(),
		ParticipantsCount: b.ParticipantsCount,
		TotalPrice:        b.TotalPrice,
		Currency:          b.Currency,
		Status:            b.Status,
		PaymentDeadline:   b.PaymentDeadline,
		CreatedAt:         b.CreatedAt,
	}
}

// ConfirmResponse pairs the pending booking with the payment session that
// must settle it.
type ConfirmResponse struct {
	Booking BookingResponse         `json:"booking"`
	Payment payments.WizardResponse `json:"payment"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
