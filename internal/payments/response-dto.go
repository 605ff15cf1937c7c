package payments

import (
	"strings"
	"time"
)

type WizardResponse struct {
	SessionID     string    `json:"session_id"`
	BookingID     string    `json:"booking_id"`
	Step          Step      `json:"step"`
	Method        Method    `json:"method"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	CardLast4     string    `json:"card_last4,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CanClose      bool      `json:"can_close"`
	CreatedAt     time.Time `json:"created_at"`
}

func (w *Wizard) ToResponse() WizardResponse {
	resp := WizardResponse{
		SessionID:     w.SessionID.String(),
		BookingID:     w.BookingID.String(),
		Step:          w.Step,
		Method:        w.Method,
		Amount:        w.Amount,
		Currency:      w.Currency,
		TransactionID: w.TransactionID,
		CanClose:      w.CanClose(),
		CreatedAt:     w.CreatedAt,
	}

	digits := strings.ReplaceAll(w.Card.Number, " ", "")
	if len(digits) >= 4 {
		resp.CardLast4 = digits[len(digits)-4:]
	}

	return resp
}
