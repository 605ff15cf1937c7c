package bookings

import (
	"errors"
	"time"

	"tourly/internal/tours"

	"github.com/google/uuid"
)

// Step is the booking wizard's position. The set is closed; transitions
// handle every member explicitly.
type Step string

const (
	StepDates        Step = "dates"
	StepDetails      Step = "details"
	StepConfirmation Step = "confirmation"
)

func (s Step) IsValid() bool {
	switch s {
	case StepDates, StepDetails, StepConfirmation:
		return true
	default:
		return false
	}
}

var (
	ErrWrongStep        = errors.New("action not allowed at current step")
	ErrDateNotBookable  = errors.New("selected date is not available")
	ErrNoDateSelected   = errors.New("no date selected")
	ErrCountOutOfRange  = errors.New("participant count out of range")
	ErrContactRequired  = errors.New("phone and emergency contact are required")
	ErrSessionNotFound  = errors.New("booking session not found")
	ErrSessionNotYours  = errors.New("booking session belongs to another user")
	ErrNoAvailableDates = errors.New("no available dates for this tour")
)

// DateOption is the wizard's snapshot of one bookable departure, taken
// when the session opens. Capacity is not re-checked between steps; the
// transactional check at confirmation is the only later validation.
type DateOption struct {
	ID                  uuid.UUID `json:"id"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	Price               int64     `json:"price"`
}

// Remaining is the open-seat count in the snapshot.
func (o *DateOption) Remaining() int {
	remaining := o.MaxParticipants - o.CurrentParticipants
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// DurationDays is the trip length in whole days, rounded up.
func (o *DateOption) DurationDays() int {
	diff := o.EndDate.Sub(o.StartDate)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// Wizard is one booking session. Persisted as JSON between requests;
// mutations go through the transition methods.
type Wizard struct {
	SessionID uuid.UUID `json:"session_id"`
	TourID    uuid.UUID `json:"tour_id"`
	UserID    uuid.UUID `json:"user_id"`
	Currency  string    `json:"currency"`

	Step              Step         `json:"step"`
	Dates             []DateOption `json:"dates"`
	SelectedDateID    *uuid.UUID   `json:"selected_date_id,omitempty"`
	ParticipantsCount int          `json:"participants_count"`
	Contact           ContactInfo  `json:"contact"`

	CreatedAt time.Time `json:"created_at"`
}

// NewWizard opens a session at the dates step over a snapshot of the
// tour's bookable departures. The participant count starts at 1 and is
// never reset by later date selections.
func NewWizard(tour *tours.Tour, userID uuid.UUID) *Wizard {
	available := tour.AvailableDates()
	options := make([]DateOption, len(available))
	for i, d := range available {
		options[i] = DateOption{
			ID:                  d.ID,
			StartDate:           d.StartDate,
			EndDate:             d.EndDate,
			MaxParticipants:     d.MaxParticipants,
			CurrentParticipants: d.CurrentParticipants,
			Price:               d.Price,
		}
	}

	return &Wizard{
		SessionID:         uuid.New(),
		TourID:            tour.ID,
		UserID:            userID,
		Currency:          tour.Currency,
		Step:              StepDates,
		Dates:             options,
		ParticipantsCount: 1,
		CreatedAt:         time.Now(),
	}
}

// HasDates reports whether the session has anything to offer. A session
// over zero bookable departures serves only the empty-state notice.
func (w *Wizard) HasDates() bool {
	return len(w.Dates) > 0
}

func (w *Wizard) findOption(dateID uuid.UUID) *DateOption {
	for i := range w.Dates {
		if w.Dates[i].ID == dateID {
			return &w.Dates[i]
		}
	}
	return nil
}

// SelectedDate returns the snapshot entry for the current selection.
func (w *Wizard) SelectedDate() *DateOption {
	if w.SelectedDateID == nil {
		return nil
	}
	return w.findOption(*w.SelectedDateID)
}

// SelectDate picks a departure and advances to details. Re-invoking with
// the same id is idempotent: the wizard stays at details with the same
// selection, and the participant count keeps its current value either way.
func (w *Wizard) SelectDate(dateID uuid.UUID) error {
	if w.Step != StepDates && w.Step != StepDetails {
		return ErrWrongStep
	}

	option := w.findOption(dateID)
	if option == nil {
		return ErrDateNotBookable
	}

	w.SelectedDateID = &option.ID
	w.Step = StepDetails
	return nil
}

// SetParticipants updates the count within 1..remaining of the selected
// departure.
func (w *Wizard) SetParticipants(count int) error {
	if w.Step != StepDetails {
		return ErrWrongStep
	}
	selected := w.SelectedDate()
	if selected == nil {
		return ErrNoDateSelected
	}
	if count < 1 || count > selected.Remaining() {
		return ErrCountOutOfRange
	}
	w.ParticipantsCount = count
	return nil
}

// SubmitContact stores the contact block and advances to confirmation.
// The guard requires both phone and emergency contact; on failure the
// wizard stays at details.
func (w *Wizard) SubmitContact(contact ContactInfo) error {
	if w.Step != StepDetails {
		return ErrWrongStep
	}
	if contact.Phone == "" || contact.EmergencyContact == "" {
		return ErrContactRequired
	}
	w.Contact = contact
	w.Step = StepConfirmation
	return nil
}

// BackToDates returns from details to date selection. The selection and
// participant count are kept, matching re-entry behavior.
func (w *Wizard) BackToDates() error {
	if w.Step != StepDetails {
		return ErrWrongStep
	}
	w.Step = StepDates
	return nil
}

// BackToDetails returns from confirmation to details.
func (w *Wizard) BackToDetails() error {
	if w.Step != StepConfirmation {
		return ErrWrongStep
	}
	w.Step = StepDetails
	return nil
}

// TotalPrice is price times count, exact integer arithmetic.
func (w *Wizard) TotalPrice() int64 {
	selected := w.SelectedDate()
	if selected == nil {
		return 0
	}
	return selected.Price * int64(w.ParticipantsCount)
}

// Confirm emits the BookingRequest. Only valid at confirmation, which the
// contact guard already protects.
func (w *Wizard) Confirm() (*BookingRequest, error) {
	if w.Step != StepConfirmation {
		return nil, ErrWrongStep
	}
	selected := w.SelectedDate()
	if selected == nil {
		return nil, ErrNoDateSelected
	}

	return &BookingRequest{
		TourID:            w.TourID,
		TourDateID:        selected.ID,
		ParticipantsCount: w.ParticipantsCount,
		TotalPrice:        selected.Price * int64(w.ParticipantsCount),
		Currency:          w.Currency,
		Contact:           w.Contact,
	}, nil
}
