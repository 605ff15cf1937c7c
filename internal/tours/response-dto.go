package tours

import (
	"time"

	"tourly/internal/users"
)

type TourDateResponse struct {
	ID                  string     `json:"id"`
	StartDate           time.Time  `json:"start_date"`
	EndDate             time.Time  `json:"end_date"`
	DurationDays        int        `json:"duration_days"`
	MaxParticipants     int        `json:"max_participants"`
	CurrentParticipants int        `json:"current_participants"`
	Remaining           int        `json:"remaining"`
	Price               int64      `json:"price"`
	Status              DateStatus `json:"status"`
	Bookable            bool       `json:"bookable"`
}

type TourResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Destination  string     `json:"destination"`
	BasePrice    int64      `json:"base_price"`
	LowestPrice  int64      `json:"lowest_price"`
	Currency     string     `json:"currency"`
	MaxGroupSize int        `json:"max_group_size"`
	Difficulty   Difficulty `json:"difficulty"`
	Meals        bool       `json:"meals"`
	Images       []string   `json:"images"`
	Tags         []string   `json:"tags"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TourDetailResponse carries the full aggregate the detail page renders:
// the tour, its departures, the organizer profile and the availability
// summary recomputed from the departure list.
type TourDetailResponse struct {
	TourResponse
	Transport     []string            `json:"transport"`
	Accommodation []string            `json:"accommodation"`
	Includes      []string            `json:"includes"`
	Excludes      []string            `json:"excludes"`
	Organizer     users.PublicProfile `json:"organizer"`
	Dates         []TourDateResponse  `json:"dates"`

	TotalCurrentParticipants int               `json:"total_current_participants"`
	TotalMaxParticipants     int               `json:"total_max_participants"`
	EarliestAvailableDate    *TourDateResponse `json:"earliest_available_date,omitempty"`
	AvailableDates           []string          `json:"available_date_ids"`
	CanJoin                  bool              `json:"can_join"`
}

type TourListQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search      string `form:"search"`
	Destination string `form:"destination"`
	Difficulty  string `form:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type PaginatedTours struct {
	Tours      []TourResponse `json:"tours"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

func (d *TourDate) ToResponse() TourDateResponse {
	return TourDateResponse{
		ID:                  d.ID.String(),
		StartDate:           d.StartDate,
		EndDate:             d.EndDate,
		DurationDays:        d.DurationDays(),
		MaxParticipants:     d.MaxParticipants,
		CurrentParticipants: d.CurrentParticipants,
		Remaining:           d.Remaining(),
		Price:               d.Price,
		Status:              d.Status,
		Bookable:            d.IsBookable(),
	}
}

func (t *Tour) ToResponse() TourResponse {
	return TourResponse{
		ID:           t.ID.String(),
		Title:        t.Title,
		Description:  t.Description,
		Destination:  t.Destination,
		BasePrice:    t.BasePrice,
		LowestPrice:  t.LowestPrice(),
		Currency:     t.Currency,
		MaxGroupSize: t.MaxGroupSize,
		Difficulty:   t.Difficulty,
		Meals:        t.Meals,
		Images:       t.Images,
		Tags:         t.Tags,
		CreatedAt:    t.CreatedAt,
	}
}

func (t *Tour) ToDetailResponse() TourDetailResponse {
	dates := make([]TourDateResponse, len(t.Dates))
	availableIDs := make([]string, 0, len(t.Dates))
	for i := range t.Dates {
		dates[i] = t.Dates[i].ToResponse()
		if t.Dates[i].IsBookable() {
			availableIDs = append(availableIDs, t.Dates[i].ID.String())
		}
	}

	current, max := t.TotalParticipants()

	detail := TourDetailResponse{
		TourResponse:  t.ToResponse(),
		Transport:     t.Transport,
		Accommodation: t.Accommodation,
		Includes:      t.Includes,
		Excludes:      t.Excludes,
		Organizer:     t.Organizer.ToPublicProfile(),
		Dates:         dates,

		TotalCurrentParticipants: current,
		TotalMaxParticipants:     max,
		AvailableDates:           availableIDs,
		CanJoin:                  t.HasBookableDates(),
	}

	if earliest := t.EarliestAvailableDate(); earliest != nil {
		resp := earliest.ToResponse()
		detail.EarliestAvailableDate = &resp
	}

	return detail
}
