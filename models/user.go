package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered seeker profile
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`          // Never serialize password hash
	BirthDate    string    `json:"birth_date"` // ISO-8601 "YYYY-MM-DD"
	SunSign      SunSign   `json:"sun_sign"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
