package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourly/internal/tours"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrDateNotAvailable     = errors.New("tour date is not available for booking")
	ErrInsufficientCapacity = errors.New("not enough seats remaining")
	ErrBookingFinal         = errors.New("booking already finalized")
)

type Repository interface {
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)

	// CreateBookingWithCapacityCheck creates the booking atomically,
	// re-validating capacity under a row lock and claiming the seats.
	CreateBookingWithCapacityCheck(ctx context.Context, booking *Booking) error

	// MarkPaid moves a pending booking to PAID and writes its settlement
	// record in one transaction.
	MarkPaid(ctx context.Context, bookingID uuid.UUID, payment *Payment) error

	// Release cancels a pending booking and returns its seats to the
	// departure roster in one transaction.
	Release(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)

	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}

	var totalCount int64
	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Tour").
		Preload("TourDate").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) CreateBookingWithCapacityCheck(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the departure row so concurrent confirmations serialize here.
		var date struct {
			ID                  uuid.UUID `gorm:"column:id"`
			MaxParticipants     int       `gorm:"column:max_participants"`
			CurrentParticipants int       `gorm:"column:current_participants"`
			Status              string    `gorm:"column:status"`
		}

		err := tx.Table("tour_dates").
			Select("id, max_participants, current_participants, status").
			Where("id = ?", booking.TourDateID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&date).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tours.ErrDateNotFound
			}
			return fmt.Errorf("failed to lock tour date: %w", err)
		}

		if date.Status != string(tours.DateStatusAvailable) {
			return ErrDateNotAvailable
		}

		newCount := date.CurrentParticipants + booking.ParticipantsCount
		if newCount > date.MaxParticipants {
			return ErrInsufficientCapacity
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		updates := map[string]interface{}{
			"current_participants": newCount,
			"updated_at":           time.Now(),
		}
		if newCount == date.MaxParticipants {
			updates["status"] = tours.DateStatusFull
		}

		err = tx.Model(&tours.TourDate{}).
			Where("id = ?", booking.TourDateID).
			Updates(updates).Error
		if err != nil {
			return fmt.Errorf("failed to update tour date roster: %w", err)
		}

		return nil
	})
}

func (r *repository) MarkPaid(ctx context.Context, bookingID uuid.UUID, payment *Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		err := tx.
			Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", bookingID).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status.IsFinal() {
			return ErrBookingFinal
		}

		err = tx.Model(&Booking{}).
			Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"status":     StatusPaid,
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to mark booking paid: %w", err)
		}

		payment.BookingID = bookingID
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment record: %w", err)
		}

		return nil
	})
}

func (r *repository) Release(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	var booking Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", bookingID).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status.IsFinal() {
			return ErrBookingFinal
		}

		now := time.Now()
		err = tx.Model(&Booking{}).
			Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		// Return the seats and reopen the date if it had filled up.
		err = tx.Model(&tours.TourDate{}).
			Where("id = ?", booking.TourDateID).
			Updates(map[string]interface{}{
				"current_participants": gorm.Expr("GREATEST(current_participants - ?, 0)", booking.ParticipantsCount),
				"updated_at":           now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to release tour date seats: %w", err)
		}

		err = tx.Model(&tours.TourDate{}).
			Where("id = ? AND status = ?", booking.TourDateID, tours.DateStatusFull).
			Update("status", tours.DateStatusAvailable).Error
		if err != nil {
			return fmt.Errorf("failed to reopen tour date: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}
