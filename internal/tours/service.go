package tours

import (
	"context"
	"fmt"
	"math"

	"tourly/internal/shared/constants"
	"tourly/pkg/cache"
	"tourly/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetTourByID(ctx context.Context, id uuid.UUID) (*TourDetailResponse, error)
	GetAllTours(ctx context.Context, query TourListQuery) (*PaginatedTours, error)
	GetTourDates(ctx context.Context, tourID uuid.UUID) ([]TourDateResponse, error)
	GetTourModel(ctx context.Context, id uuid.UUID) (*Tour, error)
	InvalidateTourCache(ctx context.Context, tourID uuid.UUID)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// GetTourByID serves the detail aggregate with a cache-aside read. Derived
// availability values are computed at response-build time, so a cached entry
// is only as stale as its short TTL.
func (s *service) GetTourByID(ctx context.Context, id uuid.UUID) (*TourDetailResponse, error) {
	cacheKey := constants.TourDetailKey(id.String())

	if s.cacheService != nil {
		var cached TourDetailResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	tour, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := tour.ToDetailResponse()

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, response, constants.TTL_TOUR_DETAIL); err != nil {
			logger.GetDefault().Warn("failed to cache tour detail", "tour_id", id.String(), "error", err)
		}
	}

	return &response, nil
}

func (s *service) GetAllTours(ctx context.Context, query TourListQuery) (*PaginatedTours, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	// Only unfiltered pages are cached; filtered queries go to the database.
	cacheable := query.Search == "" && query.Destination == "" && query.Difficulty == ""
	cacheKey := constants.TourListKey(query.Page, query.Limit)

	if cacheable && s.cacheService != nil {
		var cached PaginatedTours
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	tours, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tours: %w", err)
	}

	responses := make([]TourResponse, len(tours))
	for i := range tours {
		responses[i] = tours[i].ToResponse()
	}

	result := &PaginatedTours{
		Tours:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}

	if cacheable && s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, result, constants.TTL_TOUR_LIST); err != nil {
			logger.GetDefault().Warn("failed to cache tour list", "error", err)
		}
	}

	return result, nil
}

// GetTourDates serves the departure list. Availability shifts with every
// booking, so the cached copy lives under the short availability TTL.
func (s *service) GetTourDates(ctx context.Context, tourID uuid.UUID) ([]TourDateResponse, error) {
	fetch := func() (interface{}, error) {
		dates, err := s.repo.GetDatesByTourID(ctx, tourID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tour dates: %w", err)
		}

		responses := make([]TourDateResponse, len(dates))
		for i := range dates {
			responses[i] = dates[i].ToResponse()
		}
		return responses, nil
	}

	if s.cacheService != nil {
		var cached []TourDateResponse
		err := s.cacheService.GetOrSet(ctx, constants.TourDatesKey(tourID.String()), constants.TTL_DATE_AVAILABILITY, fetch, &cached)
		if err != nil {
			return nil, err
		}
		return cached, nil
	}

	result, err := fetch()
	if err != nil {
		return nil, err
	}
	return result.([]TourDateResponse), nil
}

// GetTourModel returns the raw tour aggregate for internal consumers that
// need to reason over departures (the booking flow), bypassing the cache.
func (s *service) GetTourModel(ctx context.Context, id uuid.UUID) (*Tour, error) {
	return s.repo.GetByID(ctx, id)
}

// InvalidateTourCache drops every cached view of a tour after its roster
// changes. Best effort: a miss here only means a short-lived stale read.
func (s *service) InvalidateTourCache(ctx context.Context, tourID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.TourCachePattern(tourID.String())); err != nil {
		logger.GetDefault().Warn("failed to invalidate tour cache", "tour_id", tourID.String(), "error", err)
	}
	if err := s.cacheService.DeletePattern(ctx, "tourly:tours:list:*"); err != nil {
		logger.GetDefault().Warn("failed to invalidate tour list cache", "error", err)
	}
}
