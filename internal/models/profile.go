package models

import (
	"time"

	"gorm.io/datatypes"
)

// MaxProfilesPerUser caps how many profiles a single user may own.
const MaxProfilesPerUser = 5

// Profile is a named viewing profile owned by exactly one user. The
// composite unique index on (user_id, name) backs the per-user name
// uniqueness invariant; names are not globally unique.
type Profile struct {
	ID            int64          `gorm:"primaryKey" json:"id"`
	UserID        int64          `gorm:"not null;uniqueIndex:idx_profiles_user_name" json:"user_id"`
	Name          string         `gorm:"size:50;not null;uniqueIndex:idx_profiles_user_name" json:"name"`
	IsKids        bool           `gorm:"not null;default:false" json:"is_kids"`
	Avatar        string         `gorm:"size:512;not null;default:''" json:"avatar"`
	Language      string         `gorm:"size:10;not null;default:'uz'" json:"language"`
	MaturityLevel string         `gorm:"size:20;not null;default:'all'" json:"maturity_level"`
	Preferences   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"preferences"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
