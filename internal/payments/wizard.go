package payments

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrWrongStep          = errors.New("action not allowed at current step")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrIncompleteCard     = errors.New("card details incomplete")
	ErrCloseDuringSettle  = errors.New("cannot close while payment is processing")
	ErrSessionNotFound    = errors.New("payment session not found")
	ErrSessionNotYours    = errors.New("payment session belongs to another user")
	ErrSettlementComplete = errors.New("payment already settled")
)

// Wizard is one payment session: the state machine plus the booking it
// settles. Persisted as JSON between requests; every mutation happens
// through the transition methods below.
type Wizard struct {
	SessionID uuid.UUID `json:"session_id"`
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	Amount    int64     `json:"amount"` // minor currency units
	Currency  string    `json:"currency"`

	Step   Step        `json:"step"`
	Method Method      `json:"method"`
	Card   CardDetails `json:"card"`

	TransactionID string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewWizard opens a payment session at the method step with the default
// method preselected.
func NewWizard(bookingID, userID uuid.UUID, amount int64, currency string) *Wizard {
	return &Wizard{
		SessionID: uuid.New(),
		BookingID: bookingID,
		UserID:    userID,
		Amount:    amount,
		Currency:  currency,
		Step:      StepMethod,
		Method:    MethodCard,
		CreatedAt: time.Now(),
	}
}

// ChooseMethod sets the payment method and advances to details. The
// transition is unconditional once a valid method is named.
func (w *Wizard) ChooseMethod(method Method) error {
	if w.Step != StepMethod {
		return ErrWrongStep
	}
	if !method.IsValid() {
		return ErrInvalidMethod
	}
	w.Method = method
	w.Step = StepDetails
	return nil
}

// Back returns from details to method. No other step has a back edge:
// processing cannot be abandoned and success only completes.
func (w *Wizard) Back() error {
	if w.Step != StepDetails {
		return ErrWrongStep
	}
	w.Step = StepMethod
	return nil
}

// SubmitDetails normalizes the card input and, if the guard passes,
// enters processing. The SBP method has no fields to validate and passes
// unconditionally.
func (w *Wizard) SubmitDetails(card CardDetails) error {
	if w.Step != StepDetails {
		return ErrWrongStep
	}
	if w.Method == MethodCard {
		normalized := card.Normalize()
		if !normalized.Complete() {
			return ErrIncompleteCard
		}
		w.Card = normalized
	}
	w.Step = StepProcessing
	return nil
}

// Settle records the simulated settlement outcome. There is no failure
// branch: settlement always succeeds.
func (w *Wizard) Settle(transactionID string) error {
	if w.Step != StepProcessing {
		return ErrWrongStep
	}
	w.TransactionID = transactionID
	w.Step = StepSuccess
	return nil
}

// CanClose reports whether the session may be abandoned. Closing is
// rejected only during the settlement window.
func (w *Wizard) CanClose() bool {
	return w.Step != StepProcessing
}
