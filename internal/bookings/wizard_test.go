package bookings

import (
	"testing"
	"time"

	"tourly/internal/tours"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTour(dates ...tours.TourDate) *tours.Tour {
	return &tours.Tour{
		ID:       uuid.New(),
		Currency: "RUB",
		Dates:    dates,
	}
}

func availableDate(current, max int, price int64) tours.TourDate {
	start := time.Now().AddDate(0, 1, 0)
	return tours.TourDate{
		ID:                  uuid.New(),
		StartDate:           start,
		EndDate:             start.AddDate(0, 0, 7),
		MaxParticipants:     max,
		CurrentParticipants: current,
		Price:               price,
		Status:              tours.DateStatusAvailable,
	}
}

func TestNewWizardSnapshotsBookableDatesOnly(t *testing.T) {
	open := availableDate(8, 10, 5000)
	full := availableDate(10, 10, 5000)
	tour := testTour(open, full)

	w := NewWizard(tour, uuid.New())

	assert.Equal(t, StepDates, w.Step)
	assert.Equal(t, 1, w.ParticipantsCount)
	require.Len(t, w.Dates, 1)
	assert.Equal(t, open.ID, w.Dates[0].ID)
	assert.True(t, w.HasDates())
}

func TestNewWizardEmptyState(t *testing.T) {
	full := availableDate(10, 10, 5000)
	w := NewWizard(testTour(full), uuid.New())

	assert.False(t, w.HasDates())
	assert.Equal(t, NoticeNoDates, w.ToResponse().Notice)
	assert.Empty(t, w.ToResponse().Dates)
}

func TestSelectDateAdvancesToDetails(t *testing.T) {
	open := availableDate(8, 10, 5000)
	w := NewWizard(testTour(open), uuid.New())

	require.NoError(t, w.SelectDate(open.ID))
	assert.Equal(t, StepDetails, w.Step)
	require.NotNil(t, w.SelectedDate())
	assert.Equal(t, open.ID, w.SelectedDate().ID)
}

func TestSelectDateRejectsUnknownDate(t *testing.T) {
	w := NewWizard(testTour(availableDate(8, 10, 5000)), uuid.New())

	assert.ErrorIs(t, w.SelectDate(uuid.New()), ErrDateNotBookable)
	assert.Equal(t, StepDates, w.Step)
}

func TestSelectDateIdempotentAndKeepsCount(t *testing.T) {
	open := availableDate(5, 10, 5000)
	w := NewWizard(testTour(open), uuid.New())

	require.NoError(t, w.SelectDate(open.ID))
	require.NoError(t, w.SetParticipants(3))

	// Re-invoking with the same id leaves the wizard at details with the
	// same selection; the count is not reset.
	require.NoError(t, w.SelectDate(open.ID))
	assert.Equal(t, StepDetails, w.Step)
	assert.Equal(t, open.ID, w.SelectedDate().ID)
	assert.Equal(t, 3, w.ParticipantsCount)
}

func TestParticipantCountDomain(t *testing.T) {
	// maxParticipants=10, currentParticipants=8 -> remaining capacity 2,
	// so the valid counts are exactly {1, 2}.
	open := availableDate(8, 10, 5000)
	w := NewWizard(testTour(open), uuid.New())
	require.NoError(t, w.SelectDate(open.ID))

	assert.ErrorIs(t, w.SetParticipants(0), ErrCountOutOfRange)
	assert.NoError(t, w.SetParticipants(1))
	assert.NoError(t, w.SetParticipants(2))
	assert.ErrorIs(t, w.SetParticipants(3), ErrCountOutOfRange)
}

func TestTotalPriceExactMultiplication(t *testing.T) {
	open := availableDate(8, 10, 5000)
	w := NewWizard(testTour(open), uuid.New())
	require.NoError(t, w.SelectDate(open.ID))
	require.NoError(t, w.SetParticipants(2))

	assert.Equal(t, int64(10000), w.TotalPrice())
}

func TestContactGuardBlocksConfirmation(t *testing.T) {
	open := availableDate(8, 10, 5000)
	w := NewWizard(testTour(open), uuid.New())
	require.NoError(t, w.SelectDate(open.ID))

	cases := []ContactInfo{
		{},
		{Phone: "+7 900 000-00-00"},
		{EmergencyContact: "+7 900 000-00-01"},
	}
	for i, contact := range cases {
		err := w.SubmitContact(contact)
		assert.ErrorIs(t, err, ErrContactRequired, "case %d", i)
		assert.Equal(t, StepDetails, w.Step, "case %d: wizard must stay at details", i)
	}

	require.NoError(t, w.SubmitContact(ContactInfo{
		Phone:            "+7 900 000-00-00",
		EmergencyContact: "+7 900 000-00-01",
	}))
	assert.Equal(t, StepConfirmation, w.Step)
}

func TestBackEdgesAreUnguarded(t *testing.T) {
	open := availableDate(8, 10, 5000)
	w := NewWizard(testTour(open), uuid.New())
	require.NoError(t, w.SelectDate(open.ID))
	require.NoError(t, w.SubmitContact(ContactInfo{Phone: "1", EmergencyContact: "2"}))

	require.NoError(t, w.BackToDetails())
	assert.Equal(t, StepDetails, w.Step)

	require.NoError(t, w.BackToDates())
	assert.Equal(t, StepDates, w.Step)

	// Selection and count survive back-navigation.
	assert.NotNil(t, w.SelectedDateID)
	assert.Equal(t, 1, w.ParticipantsCount)
}

func TestConfirmEmitsBookingRequest(t *testing.T) {
	open := availableDate(8, 10, 5000)
	tour := testTour(open)
	w := NewWizard(tour, uuid.New())

	require.NoError(t, w.SelectDate(open.ID))
	require.NoError(t, w.SetParticipants(2))
	require.NoError(t, w.SubmitContact(ContactInfo{
		Phone:            "+7 900 000-00-00",
		EmergencyContact: "+7 900 000-00-01",
		SpecialRequests:  "вегетарианское меню",
	}))

	request, err := w.Confirm()
	require.NoError(t, err)

	assert.Equal(t, tour.ID, request.TourID)
	assert.Equal(t, open.ID, request.TourDateID)
	assert.Equal(t, 2, request.ParticipantsCount)
	assert.Equal(t, int64(10000), request.TotalPrice)
	assert.Equal(t, "RUB", request.Currency)
	assert.Equal(t, "+7 900 000-00-00", request.Contact.Phone)
}

func TestConfirmOnlyFromConfirmation(t *testing.T) {
	open := availableDate(8, 10, 5000)
	w := NewWizard(testTour(open), uuid.New())

	_, err := w.Confirm()
	assert.ErrorIs(t, err, ErrWrongStep)

	require.NoError(t, w.SelectDate(open.ID))
	_, err = w.Confirm()
	assert.ErrorIs(t, err, ErrWrongStep, "contact guard protects confirmation")
}

func TestWizardResponseDerivedValues(t *testing.T) {
	open := availableDate(8, 10, 5000)
	w := NewWizard(testTour(open), uuid.New())
	require.NoError(t, w.SelectDate(open.ID))
	require.NoError(t, w.SetParticipants(2))

	resp := w.ToResponse()

	assert.Equal(t, int64(10000), resp.TotalPrice)
	assert.Equal(t, 2, resp.MaxCount, "count domain upper bound is remaining capacity")
	assert.Equal(t, open.ID.String(), resp.SelectedDateID)
	assert.Empty(t, resp.Notice)
}
