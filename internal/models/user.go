package models

import (
	"time"
)

// User is a durable account record reachable by any of its five alternate
// identifiers. Identifier columns are nullable: NULL means "no value
// recorded" and never matches during resolution, so any number of users may
// have no phone number while the per-column unique indexes still hold.
type User struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	Username    *string `gorm:"size:255;uniqueIndex" json:"username,omitempty"`
	Email       *string `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	PhoneNumber *string `gorm:"size:32;uniqueIndex" json:"phone_number,omitempty"`
	GoogleID    *string `gorm:"size:255;uniqueIndex" json:"google_id,omitempty"`
	AppleID     *string `gorm:"size:255;uniqueIndex" json:"apple_id,omitempty"`

	IsAdmin bool `gorm:"not null;default:false" json:"is_admin"`

	// Set only through the administrative password endpoint, never read
	// during identity resolution.
	PasswordHash *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profiles []Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
