package database

import (
	"tourly/internal/bookings"
	"tourly/internal/tours"
	"tourly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&tours.Tour{},
		&tours.TourDate{},
		&bookings.Booking{},
		&bookings.Payment{},
	)
}
