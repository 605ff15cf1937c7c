package bookings

import (
	"time"

	"tourly/internal/tours"
	"tourly/internal/users"

	"github.com/google/uuid"
)

// ContactInfo is the contact block collected at the details step.
type ContactInfo struct {
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergency_contact"`
	SpecialRequests  string `json:"special_requests,omitempty"`
}

// BookingRequest is the value object the wizard emits at confirmation.
// It is transient: consumed immediately to create the Booking row and the
// payment session, never persisted as-is.
type BookingRequest struct {
	TourID            uuid.UUID   `json:"tour_id"`
	TourDateID        uuid.UUID   `json:"tour_date_id"`
	ParticipantsCount int         `json:"participants_count"`
	TotalPrice        int64       `json:"total_price"`
	Currency          string      `json:"currency"`
	Contact           ContactInfo `json:"contact"`
}

type Booking struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID            uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	TourID            uuid.UUID `json:"tour_id" gorm:"type:uuid;not null;index"`
	TourDateID        uuid.UUID `json:"tour_date_id" gorm:"type:uuid;not null;index"`
	ParticipantsCount int       `json:"participants_count" gorm:"not null;check:participants_count > 0"`
	TotalPrice        int64     `json:"total_price" gorm:"not null;check:total_price >= 0"`
	Currency          string    `json:"currency" gorm:"not null;size:3"`

	ContactPhone     string `json:"contact_phone" gorm:"not null"`
	EmergencyContact string `json:"emergency_contact" gorm:"not null"`
	SpecialRequests  string `json:"special_requests" gorm:"type:text"`

	Status          Status     `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	PaymentDeadline time.Time  `json:"payment_deadline" gorm:"not null"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`

	User     users.User     `json:"-" gorm:"foreignKey:UserID"`
	Tour     tours.Tour     `json:"-" gorm:"foreignKey:TourID"`
	TourDate tours.TourDate `json:"-" gorm:"foreignKey:TourDateID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}

// Payment is the settlement record written when a booking is paid.
type Payment struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID     `json:"booking_id" gorm:"type:uuid;not null;uniqueIndex"`
	Amount        int64         `json:"amount" gorm:"not null"`
	Currency      string        `json:"currency" gorm:"not null;size:3"`
	Method        string        `json:"method" gorm:"not null;size:20"`
	TransactionID string        `json:"transaction_id" gorm:"not null;uniqueIndex"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);not null"`
	ProcessedAt   time.Time     `json:"processed_at" gorm:"not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
