package bookings

import (
	"context"
	"testing"
	"time"

	"tourly/internal/payments"
	"tourly/internal/tours"
	"tourly/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTourService struct {
	tour *tours.Tour
}

func (s *stubTourService) SetCacheService(cache.Service) {}
func (s *stubTourService) GetTourByID(context.Context, uuid.UUID) (*tours.TourDetailResponse, error) {
	return nil, tours.ErrTourNotFound
}
func (s *stubTourService) GetAllTours(context.Context, tours.TourListQuery) (*tours.PaginatedTours, error) {
	return nil, nil
}
func (s *stubTourService) GetTourDates(context.Context, uuid.UUID) ([]tours.TourDateResponse, error) {
	return nil, nil
}
func (s *stubTourService) GetTourModel(ctx context.Context, id uuid.UUID) (*tours.Tour, error) {
	if s.tour == nil || s.tour.ID != id {
		return nil, tours.ErrTourNotFound
	}
	return s.tour, nil
}
func (s *stubTourService) InvalidateTourCache(context.Context, uuid.UUID) {}

type stubPaymentService struct {
	started       []uuid.UUID
	startedAmount int64
}

func (s *stubPaymentService) SetFinalizer(payments.Finalizer) {}
func (s *stubPaymentService) Start(ctx context.Context, bookingID, userID uuid.UUID, amount int64, currency string) (*payments.WizardResponse, error) {
	s.started = append(s.started, bookingID)
	s.startedAmount = amount
	return &payments.WizardResponse{
		SessionID: uuid.New().String(),
		BookingID: bookingID.String(),
		Step:      payments.StepMethod,
		Amount:    amount,
		Currency:  currency,
	}, nil
}
func (s *stubPaymentService) GetSession(context.Context, string, uuid.UUID) (*payments.WizardResponse, error) {
	return nil, payments.ErrSessionNotFound
}
func (s *stubPaymentService) ChooseMethod(context.Context, string, uuid.UUID, payments.Method) (*payments.WizardResponse, error) {
	return nil, payments.ErrSessionNotFound
}
func (s *stubPaymentService) Back(context.Context, string, uuid.UUID) (*payments.WizardResponse, error) {
	return nil, payments.ErrSessionNotFound
}
func (s *stubPaymentService) SubmitDetails(context.Context, string, uuid.UUID, payments.CardDetails) (*payments.WizardResponse, error) {
	return nil, payments.ErrSessionNotFound
}
func (s *stubPaymentService) Close(context.Context, string, uuid.UUID) error {
	return nil
}

type stubRepository struct {
	created  *Booking
	paid     []uuid.UUID
	released []uuid.UUID
	bookings map[uuid.UUID]*Booking
}

func newStubRepository() *stubRepository {
	return &stubRepository{bookings: make(map[uuid.UUID]*Booking)}
}

func (r *stubRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (r *stubRepository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return nil, 0, nil
}

func (r *stubRepository) CreateBookingWithCapacityCheck(ctx context.Context, booking *Booking) error {
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	r.created = booking
	r.bookings[booking.ID] = booking
	return nil
}

func (r *stubRepository) MarkPaid(ctx context.Context, bookingID uuid.UUID, payment *Payment) error {
	b, ok := r.bookings[bookingID]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = StatusPaid
	r.paid = append(r.paid, bookingID)
	return nil
}

func (r *stubRepository) Release(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	b.Status = StatusCancelled
	r.released = append(r.released, bookingID)
	return b, nil
}

type serviceFixture struct {
	service  Service
	repo     *stubRepository
	payments *stubPaymentService
	tour     *tours.Tour
	userID   uuid.UUID
}

func newServiceFixture(t *testing.T, dates ...tours.TourDate) *serviceFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	tour := &tours.Tour{
		ID:       uuid.New(),
		Currency: "RUB",
		Dates:    dates,
	}

	repo := newStubRepository()
	paymentStub := &stubPaymentService{}
	sessions := NewSessionStore(cache.NewService(client), time.Minute)
	svc := NewService(repo, sessions, &stubTourService{tour: tour}, paymentStub, 24*time.Hour)

	return &serviceFixture{
		service:  svc,
		repo:     repo,
		payments: paymentStub,
		tour:     tour,
		userID:   uuid.New(),
	}
}

func TestStartWizardEmptyState(t *testing.T) {
	full := availableDate(10, 10, 5000)
	f := newServiceFixture(t, full)
	ctx := context.Background()

	resp, err := f.service.StartWizard(ctx, f.userID, f.tour.ID)
	require.NoError(t, err)

	assert.Equal(t, StepDates, resp.Step)
	assert.Empty(t, resp.Dates)
	assert.Equal(t, NoticeNoDates, resp.Notice)

	// The empty session is still addressable.
	got, err := f.service.GetSession(ctx, resp.SessionID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, NoticeNoDates, got.Notice)
}

func TestStartWizardUnknownTour(t *testing.T) {
	f := newServiceFixture(t, availableDate(8, 10, 5000))

	_, err := f.service.StartWizard(context.Background(), f.userID, uuid.New())
	assert.ErrorIs(t, err, tours.ErrTourNotFound)
}

func TestSessionOwnership(t *testing.T) {
	f := newServiceFixture(t, availableDate(8, 10, 5000))
	ctx := context.Background()

	resp, err := f.service.StartWizard(ctx, f.userID, f.tour.ID)
	require.NoError(t, err)

	_, err = f.service.GetSession(ctx, resp.SessionID, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotYours)
}

func TestConfirmCreatesPendingBookingAndOpensPayment(t *testing.T) {
	open := availableDate(8, 10, 5000)
	f := newServiceFixture(t, open)
	ctx := context.Background()

	started, err := f.service.StartWizard(ctx, f.userID, f.tour.ID)
	require.NoError(t, err)
	sessionID := started.SessionID

	_, err = f.service.SelectDate(ctx, sessionID, f.userID, open.ID)
	require.NoError(t, err)
	_, err = f.service.SetParticipants(ctx, sessionID, f.userID, 2)
	require.NoError(t, err)
	_, err = f.service.SubmitContact(ctx, sessionID, f.userID, ContactInfo{
		Phone:            "+7 900 000-00-00",
		EmergencyContact: "+7 900 000-00-01",
	})
	require.NoError(t, err)

	before := time.Now()
	confirmed, err := f.service.Confirm(ctx, sessionID, f.userID)
	require.NoError(t, err)

	require.NotNil(t, f.repo.created)
	assert.Equal(t, StatusPending, f.repo.created.Status)
	assert.Equal(t, int64(10000), f.repo.created.TotalPrice)
	assert.Equal(t, 2, f.repo.created.ParticipantsCount)
	assert.WithinDuration(t, before.Add(24*time.Hour), f.repo.created.PaymentDeadline, 5*time.Second)

	require.Len(t, f.payments.started, 1)
	assert.Equal(t, f.repo.created.ID, f.payments.started[0])
	assert.Equal(t, int64(10000), f.payments.startedAmount)
	assert.Equal(t, payments.StepMethod, confirmed.Payment.Step)

	// The booking session is gone once confirmed.
	_, err = f.service.GetSession(ctx, sessionID, f.userID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfirmBeforeContactFails(t *testing.T) {
	open := availableDate(8, 10, 5000)
	f := newServiceFixture(t, open)
	ctx := context.Background()

	started, err := f.service.StartWizard(ctx, f.userID, f.tour.ID)
	require.NoError(t, err)

	_, err = f.service.SelectDate(ctx, started.SessionID, f.userID, open.ID)
	require.NoError(t, err)

	_, err = f.service.Confirm(ctx, started.SessionID, f.userID)
	assert.ErrorIs(t, err, ErrWrongStep)
	assert.Nil(t, f.repo.created)
}

func TestCloseWizardDiscardsProgress(t *testing.T) {
	open := availableDate(8, 10, 5000)
	f := newServiceFixture(t, open)
	ctx := context.Background()

	started, err := f.service.StartWizard(ctx, f.userID, f.tour.ID)
	require.NoError(t, err)

	_, err = f.service.SelectDate(ctx, started.SessionID, f.userID, open.ID)
	require.NoError(t, err)
	_, err = f.service.SetParticipants(ctx, started.SessionID, f.userID, 2)
	require.NoError(t, err)

	require.NoError(t, f.service.CloseWizard(ctx, started.SessionID, f.userID))

	_, err = f.service.GetSession(ctx, started.SessionID, f.userID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// A new attempt starts over from date selection with nothing carried.
	restarted, err := f.service.StartWizard(ctx, f.userID, f.tour.ID)
	require.NoError(t, err)
	assert.Equal(t, StepDates, restarted.Step)
	assert.Empty(t, restarted.SelectedDateID)
	assert.Equal(t, 1, restarted.ParticipantsCount)
}

func TestBackStepsTowardDates(t *testing.T) {
	open := availableDate(8, 10, 5000)
	f := newServiceFixture(t, open)
	ctx := context.Background()

	started, err := f.service.StartWizard(ctx, f.userID, f.tour.ID)
	require.NoError(t, err)
	sessionID := started.SessionID

	_, err = f.service.SelectDate(ctx, sessionID, f.userID, open.ID)
	require.NoError(t, err)
	_, err = f.service.SubmitContact(ctx, sessionID, f.userID, ContactInfo{
		Phone:            "+7 900 000-00-00",
		EmergencyContact: "+7 900 000-00-01",
	})
	require.NoError(t, err)

	resp, err := f.service.Back(ctx, sessionID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, StepDetails, resp.Step)

	resp, err = f.service.Back(ctx, sessionID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, StepDates, resp.Step)

	_, err = f.service.Back(ctx, sessionID, f.userID)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestPaymentSucceededMarksBookingPaid(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	booking := &Booking{
		UserID:   f.userID,
		TourID:   f.tour.ID,
		Status:   StatusPending,
		Currency: "RUB",
	}
	require.NoError(t, f.repo.CreateBookingWithCapacityCheck(ctx, booking))

	err := f.service.PaymentSucceeded(ctx, booking.ID, "txn-1", payments.MethodCard, 10000, "RUB")
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{booking.ID}, f.repo.paid)
	assert.Equal(t, StatusPaid, booking.Status)
}

func TestPaymentAbandonedReleasesBooking(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	booking := &Booking{
		UserID:   f.userID,
		TourID:   f.tour.ID,
		Status:   StatusPending,
		Currency: "RUB",
	}
	require.NoError(t, f.repo.CreateBookingWithCapacityCheck(ctx, booking))

	err := f.service.PaymentAbandoned(ctx, booking.ID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{booking.ID}, f.repo.released)
	assert.Equal(t, StatusCancelled, booking.Status)
}
