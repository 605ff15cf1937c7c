package tours

import (
	"context"
	"testing"
	"time"

	"tourly/internal/shared/constants"
	"tourly/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	tour    *Tour
	dates   []TourDate
	getByID int
	getDate int
}

func (r *stubRepository) Create(ctx context.Context, tour *Tour) error { return nil }

func (r *stubRepository) GetByID(ctx context.Context, id uuid.UUID) (*Tour, error) {
	r.getByID++
	if r.tour == nil || r.tour.ID != id {
		return nil, ErrTourNotFound
	}
	return r.tour, nil
}

func (r *stubRepository) GetAll(ctx context.Context, query TourListQuery) ([]Tour, int64, error) {
	return nil, 0, nil
}

func (r *stubRepository) GetDateByID(ctx context.Context, dateID uuid.UUID) (*TourDate, error) {
	return nil, ErrDateNotFound
}

func (r *stubRepository) GetDatesByTourID(ctx context.Context, tourID uuid.UUID) ([]TourDate, error) {
	r.getDate++
	return r.dates, nil
}

func newCachedService(t *testing.T, repo *stubRepository) (Service, cache.Service) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cacheService := cache.NewService(client)
	svc := NewService(repo)
	svc.SetCacheService(cacheService)
	return svc, cacheService
}

func waitForKey(t *testing.T, cacheService cache.Service, key string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cacheService.Exists(context.Background(), key) {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("key %s never appeared in cache", key)
}

func TestGetTourByIDServesFromCache(t *testing.T) {
	start := time.Now()
	repo := &stubRepository{
		tour: &Tour{
			ID:       uuid.New(),
			Title:    "Поход по Горному Алтаю",
			Currency: "RUB",
			Dates: []TourDate{
				date(DateStatusAvailable, 8, 10, 5000, start, 7),
			},
		},
	}
	svc, _ := newCachedService(t, repo)
	ctx := context.Background()

	first, err := svc.GetTourByID(ctx, repo.tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getByID)

	second, err := svc.GetTourByID(ctx, repo.tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getByID, "second read must come from cache")
	assert.Equal(t, first.Title, second.Title)
}

func TestInvalidateTourCacheForcesReload(t *testing.T) {
	start := time.Now()
	repo := &stubRepository{
		tour: &Tour{
			ID:       uuid.New(),
			Currency: "RUB",
			Dates: []TourDate{
				date(DateStatusAvailable, 8, 10, 5000, start, 7),
			},
		},
	}
	svc, _ := newCachedService(t, repo)
	ctx := context.Background()

	_, err := svc.GetTourByID(ctx, repo.tour.ID)
	require.NoError(t, err)

	svc.InvalidateTourCache(ctx, repo.tour.ID)

	_, err = svc.GetTourByID(ctx, repo.tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getByID, "invalidation must send the next read to the repository")
}

func TestGetTourDatesCachedUnderAvailabilityTTL(t *testing.T) {
	start := time.Now()
	tourID := uuid.New()
	repo := &stubRepository{
		dates: []TourDate{
			date(DateStatusAvailable, 8, 10, 5000, start, 7),
			date(DateStatusFull, 10, 10, 5000, start, 7),
		},
	}
	svc, cacheService := newCachedService(t, repo)
	ctx := context.Background()

	first, err := svc.GetTourDates(ctx, tourID)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, repo.getDate)

	// The cache write happens off the request path; wait for it before
	// asserting the second read skips the repository.
	waitForKey(t, cacheService, constants.TourDatesKey(tourID.String()))

	repo.dates = repo.dates[:1]

	second, err := svc.GetTourDates(ctx, tourID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getDate, "second read must come from cache")
	assert.Len(t, second, 2, "cached copy is served until the TTL or an invalidation")
}

func TestGetTourDatesWithoutCache(t *testing.T) {
	start := time.Now()
	repo := &stubRepository{
		dates: []TourDate{
			date(DateStatusAvailable, 8, 10, 5000, start, 7),
		},
	}
	svc := NewService(repo)

	dates, err := svc.GetTourDates(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.True(t, dates[0].Bookable)
}
