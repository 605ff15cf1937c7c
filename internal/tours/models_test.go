package tours

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func date(status DateStatus, current, max int, price int64, start time.Time, days int) TourDate {
	return TourDate{
		ID:                  uuid.New(),
		StartDate:           start,
		EndDate:             start.AddDate(0, 0, days),
		MaxParticipants:     max,
		CurrentParticipants: current,
		Price:               price,
		Status:              status,
	}
}

func TestIsBookableRequiresBothHalves(t *testing.T) {
	start := time.Now()

	open := date(DateStatusAvailable, 8, 10, 5000, start, 7)
	assert.True(t, open.IsBookable())

	// Marked available but the roster is full.
	fullRoster := date(DateStatusAvailable, 10, 10, 5000, start, 7)
	assert.False(t, fullRoster.IsBookable())

	flaggedFull := date(DateStatusFull, 5, 10, 5000, start, 7)
	assert.False(t, flaggedFull.IsBookable())

	cancelled := date(DateStatusCancelled, 0, 10, 5000, start, 7)
	assert.False(t, cancelled.IsBookable())
}

func TestAvailableDatesFiltersExactly(t *testing.T) {
	start := time.Now()
	bookable := date(DateStatusAvailable, 2, 10, 5000, start, 7)

	tour := Tour{
		Dates: []TourDate{
			bookable,
			date(DateStatusAvailable, 10, 10, 5000, start, 7),
			date(DateStatusFull, 5, 10, 5000, start, 7),
			date(DateStatusCancelled, 0, 10, 5000, start, 7),
		},
	}

	available := tour.AvailableDates()
	assert.Len(t, available, 1)
	assert.Equal(t, bookable.ID, available[0].ID)
}

func TestRemainingFloorsAtZero(t *testing.T) {
	d := date(DateStatusAvailable, 12, 10, 5000, time.Now(), 7)
	assert.Equal(t, 0, d.Remaining())

	d = date(DateStatusAvailable, 8, 10, 5000, time.Now(), 7)
	assert.Equal(t, 2, d.Remaining())
}

func TestDurationDaysRoundsUp(t *testing.T) {
	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	exact := TourDate{StartDate: start, EndDate: start.Add(7 * 24 * time.Hour)}
	assert.Equal(t, 7, exact.DurationDays())

	partial := TourDate{StartDate: start, EndDate: start.Add(7*24*time.Hour + time.Hour)}
	assert.Equal(t, 8, partial.DurationDays())

	short := TourDate{StartDate: start, EndDate: start.Add(3 * time.Hour)}
	assert.Equal(t, 1, short.DurationDays())
}

func TestTotalParticipantsSumsAllDates(t *testing.T) {
	start := time.Now()
	tour := Tour{
		Dates: []TourDate{
			date(DateStatusAvailable, 8, 10, 5000, start, 7),
			date(DateStatusFull, 10, 10, 5000, start, 7),
			date(DateStatusCancelled, 0, 12, 5000, start, 7),
		},
	}

	current, max := tour.TotalParticipants()
	assert.Equal(t, 18, current)
	assert.Equal(t, 32, max)
}

func TestLowestPrice(t *testing.T) {
	start := time.Now()
	tour := Tour{
		BasePrice: 9000,
		Dates: []TourDate{
			date(DateStatusAvailable, 0, 10, 5000, start, 7),
			date(DateStatusFull, 0, 10, 4500, start, 7),
			date(DateStatusAvailable, 0, 10, 6000, start, 7),
		},
	}
	assert.Equal(t, int64(4500), tour.LowestPrice())

	empty := Tour{BasePrice: 9000}
	assert.Equal(t, int64(9000), empty.LowestPrice())
}

func TestEarliestAvailableDateIgnoresCapacity(t *testing.T) {
	start := time.Now()

	// First available date has a full roster; it still wins because the
	// earliest-date lookup checks status only.
	packed := date(DateStatusAvailable, 10, 10, 5000, start, 7)
	open := date(DateStatusAvailable, 2, 10, 5000, start.AddDate(0, 1, 0), 7)

	tour := Tour{Dates: []TourDate{
		date(DateStatusCancelled, 0, 10, 5000, start, 7),
		packed,
		open,
	}}

	earliest := tour.EarliestAvailableDate()
	assert.NotNil(t, earliest)
	assert.Equal(t, packed.ID, earliest.ID)
}

func TestHasBookableDates(t *testing.T) {
	start := time.Now()

	none := Tour{Dates: []TourDate{
		date(DateStatusFull, 10, 10, 5000, start, 7),
		date(DateStatusAvailable, 10, 10, 5000, start, 7),
	}}
	assert.False(t, none.HasBookableDates())

	some := Tour{Dates: []TourDate{
		date(DateStatusAvailable, 8, 10, 5000, start, 7),
	}}
	assert.True(t, some.HasBookableDates())
}

func TestToDetailResponseAggregates(t *testing.T) {
	start := time.Now()
	bookable := date(DateStatusAvailable, 8, 10, 5000, start, 7)

	tour := Tour{
		ID:       uuid.New(),
		Currency: "RUB",
		Dates: []TourDate{
			bookable,
			date(DateStatusFull, 10, 10, 4000, start, 7),
		},
	}

	detail := tour.ToDetailResponse()

	assert.Equal(t, 18, detail.TotalCurrentParticipants)
	assert.Equal(t, 20, detail.TotalMaxParticipants)
	assert.Equal(t, []string{bookable.ID.String()}, detail.AvailableDates)
	assert.True(t, detail.CanJoin)
	assert.Equal(t, int64(4000), detail.LowestPrice)
}
