package tours

import (
	"time"

	"tourly/internal/users"

	"github.com/google/uuid"
)

type Tour struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title         string     `json:"title" gorm:"not null;size:255"`
	Description   string     `json:"description" gorm:"type:text"`
	Destination   string     `json:"destination" gorm:"not null;size:255;index"`
	BasePrice     int64      `json:"base_price" gorm:"not null;check:base_price >= 0"` // minor currency units
	Currency      string     `json:"currency" gorm:"not null;size:3;default:'RUB'"`
	MaxGroupSize  int        `json:"max_group_size" gorm:"not null;check:max_group_size > 0"`
	Difficulty    Difficulty `json:"difficulty" gorm:"type:varchar(10);default:'easy'"`
	Meals         bool       `json:"meals" gorm:"default:false"`
	Images        []string   `json:"images" gorm:"serializer:json"`
	Tags          []string   `json:"tags" gorm:"serializer:json"`
	Transport     []string   `json:"transport" gorm:"serializer:json"`
	Accommodation []string   `json:"accommodation" gorm:"serializer:json"`
	Includes      []string   `json:"includes" gorm:"serializer:json"`
	Excludes      []string   `json:"excludes" gorm:"serializer:json"`

	OrganizerID uuid.UUID  `json:"organizer_id" gorm:"type:uuid;not null"`
	Organizer   users.User `json:"-" gorm:"foreignKey:OrganizerID"`
	Dates       []TourDate `json:"dates" gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Tour) TableName() string {
	return "tours"
}

type TourDate struct {
	ID                  uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TourID              uuid.UUID  `json:"tour_id" gorm:"type:uuid;not null;index"`
	StartDate           time.Time  `json:"start_date" gorm:"not null"`
	EndDate             time.Time  `json:"end_date" gorm:"not null"`
	MaxParticipants     int        `json:"max_participants" gorm:"not null;check:max_participants > 0"`
	CurrentParticipants int        `json:"current_participants" gorm:"default:0;check:current_participants >= 0"`
	Price               int64      `json:"price" gorm:"not null;check:price >= 0"` // minor currency units
	Status              DateStatus `json:"status" gorm:"type:varchar(20);default:'available'"`
	CreatedAt           time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TourDate) TableName() string {
	return "tour_dates"
}

// Remaining is the number of seats still open on this departure.
func (d *TourDate) Remaining() int {
	remaining := d.MaxParticipants - d.CurrentParticipants
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// IsBookable reports whether this departure accepts new participants.
// Both halves of the predicate matter: a date can be marked available
// while already holding a full roster.
func (d *TourDate) IsBookable() bool {
	return d.Status == DateStatusAvailable && d.CurrentParticipants < d.MaxParticipants
}

// DurationDays is the trip length in whole days, rounded up.
func (d *TourDate) DurationDays() int {
	diff := d.EndDate.Sub(d.StartDate)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// AvailableDates returns the departures open for booking. Recomputed on
// every call so a roster change is visible immediately.
func (t *Tour) AvailableDates() []TourDate {
	available := make([]TourDate, 0, len(t.Dates))
	for _, d := range t.Dates {
		if d.IsBookable() {
			available = append(available, d)
		}
	}
	return available
}

// TotalParticipants sums current and maximum rosters across all departures.
func (t *Tour) TotalParticipants() (current, max int) {
	for _, d := range t.Dates {
		current += d.CurrentParticipants
		max += d.MaxParticipants
	}
	return current, max
}

// LowestPrice is the cheapest departure price, or the base price when the
// tour has no departures yet.
func (t *Tour) LowestPrice() int64 {
	if len(t.Dates) == 0 {
		return t.BasePrice
	}
	lowest := t.Dates[0].Price
	for _, d := range t.Dates[1:] {
		if d.Price < lowest {
			lowest = d.Price
		}
	}
	return lowest
}

// EarliestAvailableDate returns the first departure marked available.
// Capacity is intentionally not consulted here; a full-but-available date
// still counts as the next departure for display purposes.
func (t *Tour) EarliestAvailableDate() *TourDate {
	for i := range t.Dates {
		if t.Dates[i].Status == DateStatusAvailable {
			return &t.Dates[i]
		}
	}
	return nil
}

// HasBookableDates reports whether the join action should be offered at all.
func (t *Tour) HasBookableDates() bool {
	for _, d := range t.Dates {
		if d.IsBookable() {
			return true
		}
	}
	return false
}
