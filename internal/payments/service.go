package payments

import (
	"context"
	"fmt"
	"time"

	"tourly/pkg/logger"

	"github.com/google/uuid"
)

// Finalizer is notified when a payment session ends. The booking side
// implements it; the indirection keeps this package free of a dependency
// on booking persistence.
type Finalizer interface {
	PaymentSucceeded(ctx context.Context, bookingID uuid.UUID, transactionID string, method Method, amount int64, currency string) error
	PaymentAbandoned(ctx context.Context, bookingID uuid.UUID) error
}

type Service interface {
	SetFinalizer(finalizer Finalizer)
	Start(ctx context.Context, bookingID, userID uuid.UUID, amount int64, currency string) (*WizardResponse, error)
	GetSession(ctx context.Context, sessionID string, userID uuid.UUID) (*WizardResponse, error)
	ChooseMethod(ctx context.Context, sessionID string, userID uuid.UUID, method Method) (*WizardResponse, error)
	Back(ctx context.Context, sessionID string, userID uuid.UUID) (*WizardResponse, error)
	SubmitDetails(ctx context.Context, sessionID string, userID uuid.UUID, card CardDetails) (*WizardResponse, error)
	Close(ctx context.Context, sessionID string, userID uuid.UUID) error
}

type service struct {
	sessions  *SessionStore
	finalizer Finalizer

	settlementDelay   time.Duration
	successCloseDelay time.Duration
}

func NewService(sessions *SessionStore, settlementDelay, successCloseDelay time.Duration) Service {
	return &service{
		sessions:          sessions,
		settlementDelay:   settlementDelay,
		successCloseDelay: successCloseDelay,
	}
}

func (s *service) SetFinalizer(finalizer Finalizer) {
	s.finalizer = finalizer
}

func (s *service) Start(ctx context.Context, bookingID, userID uuid.UUID, amount int64, currency string) (*WizardResponse, error) {
	wizard := NewWizard(bookingID, userID, amount, currency)
	if err := s.sessions.Save(ctx, wizard); err != nil {
		return nil, fmt.Errorf("failed to save payment session: %w", err)
	}

	resp := wizard.ToResponse()
	return &resp, nil
}

func (s *service) GetSession(ctx context.Context, sessionID string, userID uuid.UUID) (*WizardResponse, error) {
	wizard, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	resp := wizard.ToResponse()
	return &resp, nil
}

func (s *service) ChooseMethod(ctx context.Context, sessionID string, userID uuid.UUID, method Method) (*WizardResponse, error) {
	wizard, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := wizard.ChooseMethod(method); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, wizard); err != nil {
		return nil, fmt.Errorf("failed to save payment session: %w", err)
	}

	resp := wizard.ToResponse()
	return &resp, nil
}

func (s *service) Back(ctx context.Context, sessionID string, userID uuid.UUID) (*WizardResponse, error) {
	wizard, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := wizard.Back(); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, wizard); err != nil {
		return nil, fmt.Errorf("failed to save payment session: %w", err)
	}

	resp := wizard.ToResponse()
	return &resp, nil
}

// SubmitDetails applies the card guard and, on success, enters processing
// and schedules the simulated settlement. Settlement has no failure
// branch; once processing starts the session always reaches success.
func (s *service) SubmitDetails(ctx context.Context, sessionID string, userID uuid.UUID, card CardDetails) (*WizardResponse, error) {
	wizard, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := wizard.SubmitDetails(card); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, wizard); err != nil {
		return nil, fmt.Errorf("failed to save payment session: %w", err)
	}

	go s.settle(wizard.SessionID.String())

	resp := wizard.ToResponse()
	return &resp, nil
}

// settle runs the settlement window off the request goroutine. It uses a
// background context: the originating request finishing must not cancel
// an in-flight settlement.
func (s *service) settle(sessionID string) {
	log := logger.GetDefault()
	ctx := context.Background()

	time.Sleep(s.settlementDelay)

	wizard, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		log.Error("settlement lost payment session", "session_id", sessionID, "error", err)
		return
	}

	transactionID := uuid.New().String()
	if err := wizard.Settle(transactionID); err != nil {
		log.Error("settlement found session at wrong step", "session_id", sessionID, "step", string(wizard.Step))
		return
	}

	if err := s.sessions.Save(ctx, wizard); err != nil {
		log.Error("failed to save settled session", "session_id", sessionID, "error", err)
		return
	}

	time.Sleep(s.successCloseDelay)

	if s.finalizer != nil {
		if err := s.finalizer.PaymentSucceeded(ctx, wizard.BookingID, transactionID, wizard.Method, wizard.Amount, wizard.Currency); err != nil {
			log.Error("payment finalizer failed", "booking_id", wizard.BookingID.String(), "error", err)
			return
		}
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		log.Warn("failed to delete settled session", "session_id", sessionID, "error", err)
	}
}

// Close abandons the session. Rejected during processing; at success the
// settlement goroutine owns cleanup, so closing is a no-op there. Any
// other step discards the session and cancels the pending booking.
func (s *service) Close(ctx context.Context, sessionID string, userID uuid.UUID) error {
	wizard, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return err
	}

	if !wizard.CanClose() {
		return ErrCloseDuringSettle
	}
	if wizard.Step == StepSuccess {
		return ErrSettlementComplete
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete payment session: %w", err)
	}

	if s.finalizer != nil {
		if err := s.finalizer.PaymentAbandoned(ctx, wizard.BookingID); err != nil {
			return fmt.Errorf("failed to abandon booking: %w", err)
		}
	}

	return nil
}

func (s *service) loadOwned(ctx context.Context, sessionID string, userID uuid.UUID) (*Wizard, error) {
	wizard, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if wizard.UserID != userID {
		return nil, ErrSessionNotYours
	}
	return wizard, nil
}
