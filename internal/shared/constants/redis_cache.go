package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the Tourly application.
// Pattern: tourly:{module}:{operation}:{identifier}

// Semi-static data (medium TTL: changes occasionally)
const (
	TTL_TOUR_DETAIL = 2 * time.Hour // tour detail aggregate
	TTL_TOUR_LIST   = 1 * time.Hour // tour listings
)

// Dynamic data (short TTL: changes frequently)
const (
	TTL_DATE_AVAILABILITY = 2 * time.Minute // per-date seat availability
)

// Cache key builders

func TourDetailKey(tourID string) string {
	return fmt.Sprintf("tourly:tours:detail:%s", tourID)
}

func TourListKey(page, limit int) string {
	return fmt.Sprintf("tourly:tours:list:%d:%d", page, limit)
}

func TourDatesKey(tourID string) string {
	return fmt.Sprintf("tourly:tours:dates:%s", tourID)
}

func BookingWizardKey(sessionID string) string {
	return fmt.Sprintf("tourly:bookings:wizard:%s", sessionID)
}

func PaymentWizardKey(sessionID string) string {
	return fmt.Sprintf("tourly:payments:wizard:%s", sessionID)
}

// Invalidation patterns

func TourCachePattern(tourID string) string {
	return fmt.Sprintf("tourly:tours:*%s*", tourID)
}
