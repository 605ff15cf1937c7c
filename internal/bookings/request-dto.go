package bookings

// StartWizardRequest opens a booking session for a tour.
type StartWizardRequest struct {
	TourID string `json:"tour_id" validate:"required,uuid"`
}

// SelectDateRequest picks a departure at the dates step.
type SelectDateRequest struct {
	DateID string `json:"date_id" validate:"required,uuid"`
}

// SetParticipantsRequest updates the participant count at the details step.
type SetParticipantsRequest struct {
	Count int `json:"count" validate:"required,min=1"`
}

// SubmitContactRequest carries the contact block for details -> confirmation.
type SubmitContactRequest struct {
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergency_contact"`
	SpecialRequests  string `json:"special_requests,omitempty"`
}

type BookingListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED PAID CANCELLED"`
}
