package bookings

import (
	"context"
	"fmt"
	"math"
	"time"

	"tourly/internal/payments"
	"tourly/internal/tours"
	"tourly/pkg/logger"

	"github.com/google/uuid"
)

// Notifier publishes the post-settlement confirmation notice. Declared
// here so the notifications package stays an optional dependency.
type Notifier interface {
	PublishBookingConfirmed(ctx context.Context, bookingID, tourID, userID string, amount int64, currency string) error
}

type Service interface {
	SetNotifier(notifier Notifier)

	StartWizard(ctx context.Context, userID, tourID uuid.UUID) (*WizardResponse, error)
	GetSession(ctx context.Context, sessionID string, userID uuid.UUID) (*WizardResponse, error)
	SelectDate(ctx context.Context, sessionID string, userID, dateID uuid.UUID) (*WizardResponse, error)
	SetParticipants(ctx context.Context, sessionID string, userID uuid.UUID, count int) (*WizardResponse, error)
	SubmitContact(ctx context.Context, sessionID string, userID uuid.UUID, contact ContactInfo) (*WizardResponse, error)
	Back(ctx context.Context, sessionID string, userID uuid.UUID) (*WizardResponse, error)
	Confirm(ctx context.Context, sessionID string, userID uuid.UUID) (*ConfirmResponse, error)
	CloseWizard(ctx context.Context, sessionID string, userID uuid.UUID) error

	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)

	// payments.Finalizer
	PaymentSucceeded(ctx context.Context, bookingID uuid.UUID, transactionID string, method payments.Method, amount int64, currency string) error
	PaymentAbandoned(ctx context.Context, bookingID uuid.UUID) error
}

type service struct {
	repo           Repository
	sessions       *SessionStore
	tourService    tours.Service
	paymentService payments.Service
	notifier       Notifier

	paymentDeadline time.Duration
}

func NewService(repo Repository, sessions *SessionStore, tourService tours.Service, paymentService payments.Service, paymentDeadline time.Duration) Service {
	return &service{
		repo:            repo,
		sessions:        sessions,
		tourService:     tourService,
		paymentService:  paymentService,
		paymentDeadline: paymentDeadline,
	}
}

func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// StartWizard opens a session over the tour's bookable departures. A tour
// with none still gets a session; it serves the empty-state notice and
// offers no date entries.
func (s *service) StartWizard(ctx context.Context, userID, tourID uuid.UUID) (*WizardResponse, error) {
	tour, err := s.tourService.GetTourModel(ctx, tourID)
	if err != nil {
		return nil, err
	}

	wizard := NewWizard(tour, userID)
	if err := s.sessions.Save(ctx, wizard); err != nil {
		return nil, fmt.Errorf("failed to save booking session: %w", err)
	}

	logger.GetDefault().LogWizardStarted(ctx, wizard.SessionID.String(), tourID.String(), userID.String())

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

func (s *service) SelectDate(ctx context.Context, sessionID string, userID, dateID uuid.UUID) (*WizardResponse, error) {
	return s.mutate(ctx, sessionID, userID, func(w *Wizard) error {
		return w.SelectDate(dateID)
	})
}

func (s *service) SetParticipants(ctx context.Context, sessionID string, userID uuid.UUID, count int) (*WizardResponse, error) {
	return s.mutate(ctx, sessionID, userID, func(w *Wizard) error {
		return w.SetParticipants(count)
	})
}

func (s *service) SubmitContact(ctx context.Context, sessionID string, userID uuid.UUID, contact ContactInfo) (*WizardResponse, error) {
	return s.mutate(ctx, sessionID, userID, func(w *Wizard) error {
		return w.SubmitContact(contact)
	})
}

// Back steps the wizard one step toward date selection.
func (s *service) Back(ctx context.Context, sessionID string, userID uuid.UUID) (*WizardResponse, error) {
	return s.mutate(ctx, sessionID, userID, func(w *Wizard) error {
		switch w.Step {
		case StepConfirmation:
			return w.BackToDetails()
		case StepDetails:
			return w.BackToDates()
		default:
			return ErrWrongStep
		}
	})
}

// Confirm emits the BookingRequest, creates the PENDING booking under the
// transactional capacity check, discards the booking session and opens
// the payment session for the total.
func (s *service) Confirm(ctx context.Context, sessionID string, userID uuid.UUID) (*ConfirmResponse, error) {
	wizard, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	request, err := wizard.Confirm()
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:            userID,
		TourID:            request.TourID,
		TourDateID:        request.TourDateID,
		ParticipantsCount: request.ParticipantsCount,
		TotalPrice:        request.TotalPrice,
		Currency:          request.Currency,
		ContactPhone:      request.Contact.Phone,
		EmergencyContact:  request.Contact.EmergencyContact,
		SpecialRequests:   request.Contact.SpecialRequests,
		Status:            StatusPending,
		PaymentDeadline:   time.Now().Add(s.paymentDeadline),
	}

	if err := s.repo.CreateBookingWithCapacityCheck(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		logger.GetDefault().Warn("failed to delete booking session", "session_id", sessionID, "error", err)
	}

	s.tourService.InvalidateTourCache(ctx, booking.TourID)

	paymentSession, err := s.paymentService.Start(ctx, booking.ID, userID, booking.TotalPrice, booking.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to open payment session: %w", err)
	}

	logger.GetDefault().LogBookingPending(ctx, booking.ID.String(), booking.TourID.String(), userID.String())

	return &ConfirmResponse{
		Booking: booking.ToResponse(),
		Payment: *paymentSession,
	}, nil
}

// CloseWizard discards the session with no partial save.
func (s *service) CloseWizard(ctx context.Context, sessionID string, userID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, sessionID, userID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.GetUserBookings(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = bookings[i].ToResponse()
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

// PaymentSucceeded settles the booking: PAID status, settlement record,
// confirmation notice. Runs on the settlement goroutine.
func (s *service) PaymentSucceeded(ctx context.Context, bookingID uuid.UUID, transactionID string, method payments.Method, amount int64, currency string) error {
	payment := &Payment{
		Amount:        amount,
		Currency:      currency,
		Method:        string(method),
		TransactionID: transactionID,
		Status:        PaymentStatusCompleted,
		ProcessedAt:   time.Now(),
	}

	if err := s.repo.MarkPaid(ctx, bookingID, payment); err != nil {
		return err
	}

	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	logger.GetDefault().LogBookingPaid(ctx, bookingID.String(), transactionID)
	s.tourService.InvalidateTourCache(ctx, booking.TourID)

	if s.notifier != nil {
		err := s.notifier.PublishBookingConfirmed(ctx, bookingID.String(), booking.TourID.String(), booking.UserID.String(), amount, currency)
		if err != nil {
			logger.GetDefault().Warn("failed to publish booking confirmation", "booking_id", bookingID.String(), "error", err)
		}
	}

	return nil
}

// PaymentAbandoned cancels the pending booking and returns its seats.
// The flow restarts from date selection if the user tries again.
func (s *service) PaymentAbandoned(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.repo.Release(ctx, bookingID)
	if err != nil {
		return err
	}

	logger.GetDefault().LogBookingAbandoned(ctx, bookingID.String())
	s.tourService.InvalidateTourCache(ctx, booking.TourID)

	return nil
}

func (s *service) mutate(ctx context.Context, sessionID string, userID uuid.UUID, fn func(*Wizard) error) (*WizardResponse, error) {
	wizard, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := fn(wizard); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, wizard); err != nil {
		return nil, fmt.Errorf("failed to save booking session: %w", err)
	}

	resp := wizard.ToResponse()
	return &resp, nil
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
