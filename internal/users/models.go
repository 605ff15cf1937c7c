package users

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"` // hide in json
	Avatar       string    `json:"avatar"`
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	Rating       float64   `json:"rating" gorm:"default:0"`
	ReviewsCount int       `json:"reviews_count" gorm:"default:0"`
	Verified     bool      `json:"verified" gorm:"default:false"`
	JoinedAt     time.Time `json:"joined_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PublicProfile is the organizer-facing view of a user, safe to embed
// in tour detail payloads.
type PublicProfile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	Rating       float64   `json:"rating"`
	ReviewsCount int       `json:"reviews_count"`
	Verified     bool      `json:"verified"`
	JoinedAt     time.Time `json:"joined_at"`
}

func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		ID:           u.ID.String(),
		Name:         u.Name,
		Avatar:       u.Avatar,
		Bio:          u.Bio,
		Location:     u.Location,
		Rating:       u.Rating,
		ReviewsCount: u.ReviewsCount,
		Verified:     u.Verified,
		JoinedAt:     u.JoinedAt,
	}
}
