package tours

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTourNotFound = errors.New("tour not found")
	ErrDateNotFound = errors.New("tour date not found")
)

type Repository interface {
	Create(ctx context.Context, tour *Tour) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tour, error)
	GetAll(ctx context.Context, query TourListQuery) ([]Tour, int64, error)
	GetDateByID(ctx context.Context, dateID uuid.UUID) (*TourDate, error)
	GetDatesByTourID(ctx context.Context, tourID uuid.UUID) ([]TourDate, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tour *Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Tour, error) {
	var tour Tour
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Dates", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date ASC")
		}).
		First(&tour, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return &tour, nil
}

func (r *repository) GetAll(ctx context.Context, query TourListQuery) ([]Tour, int64, error) {
	db := r.db.WithContext(ctx).Model(&Tour{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}
	if query.Destination != "" {
		db = db.Where("destination ILIKE ?", "%"+query.Destination+"%")
	}
	if query.Difficulty != "" {
		db = db.Where("difficulty = ?", query.Difficulty)
	}

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit

	var tours []Tour
	err := db.Preload("Dates").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&tours).Error
	if err != nil {
		return nil, 0, err
	}

	return tours, totalCount, nil
}

func (r *repository) GetDateByID(ctx context.Context, dateID uuid.UUID) (*TourDate, error) {
	var date TourDate
	err := r.db.WithContext(ctx).First(&date, "id = ?", dateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDateNotFound
		}
		return nil, err
	}
	return &date, nil
}

func (r *repository) GetDatesByTourID(ctx context.Context, tourID uuid.UUID) ([]TourDate, error) {
	var dates []TourDate
	err := r.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Order("start_date ASC").
		Find(&dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}
