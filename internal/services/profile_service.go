package services

import (
	"context"
	"errors"

	"github.com/moviplay/user-service/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileService enforces the profile invariants: at most
// models.MaxProfilesPerUser profiles per user and per-user name
// uniqueness, each check atomic with the mutation it guards.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// CreateProfileInput carries the attributes of a new profile. Zero values
// for Language, MaturityLevel and Preferences fall back to the defaults.
type CreateProfileInput struct {
	Name          string
	IsKids        bool
	Avatar        string
	Language      string
	MaturityLevel string
	Preferences   datatypes.JSON
}

// ProfileUpdate is a partial update: nil fields are left untouched, never
// reset to defaults.
type ProfileUpdate struct {
	Name          *string
	IsKids        *bool
	Avatar        *string
	Language      *string
	MaturityLevel *string
	Preferences   datatypes.JSON
}

func (u ProfileUpdate) changes() map[string]interface{} {
	out := make(map[string]interface{})
	if u.Name != nil {
		out["name"] = *u.Name
	}
	if u.IsKids != nil {
		out["is_kids"] = *u.IsKids
	}
	if u.Avatar != nil {
		out["avatar"] = *u.Avatar
	}
	if u.Language != nil {
		out["language"] = *u.Language
	}
	if u.MaturityLevel != nil {
		out["maturity_level"] = *u.MaturityLevel
	}
	if u.Preferences != nil {
		out["preferences"] = u.Preferences
	}
	return out
}

// Create inserts a new profile after checking the count and name
// invariants, all inside one transaction. The application-level checks
// produce the friendly errors; the (user_id, name) unique index is the
// actual source of truth, and a duplicate-key failure from it is
// converted to the same conflict error.
func (s *ProfileService) Create(ctx context.Context, userID int64, in CreateProfileInput) (*models.Profile, error) {
	profile := models.Profile{
		UserID:        userID,
		Name:          in.Name,
		IsKids:        in.IsKids,
		Avatar:        in.Avatar,
		Language:      in.Language,
		MaturityLevel: in.MaturityLevel,
		Preferences:   in.Preferences,
	}
	if profile.Language == "" {
		profile.Language = "uz"
	}
	if profile.MaturityLevel == "" {
		profile.MaturityLevel = "all"
	}
	if profile.Preferences == nil {
		profile.Preferences = datatypes.JSON("[]")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Select("id").First(&owner, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Profile{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxProfilesPerUser {
			return &ProfileLimitError{UserID: userID, Count: int(count)}
		}

		var taken int64
		if err := tx.Model(&models.Profile{}).
			Where("user_id = ? AND name = ?", userID, in.Name).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return &ProfileNameExistsError{UserID: userID, Name: in.Name}
		}

		return tx.Create(&profile).Error
	})
	if isUniqueViolation(err) {
		return nil, &ProfileNameExistsError{UserID: userID, Name: in.Name}
	}
	if err != nil {
		return nil, classifyStorage(err)
	}
	return &profile, nil
}

// Update applies a partial update to a profile. A rename is checked for
// uniqueness against the user's other profiles; an update with no fields
// specified returns the profile unchanged.
func (s *ProfileService) Update(ctx context.Context, profileID int64, upd ProfileUpdate) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&profile, profileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}

		if upd.Name != nil && *upd.Name != profile.Name {
			var taken int64
			if err := tx.Model(&models.Profile{}).
				Where("user_id = ? AND name = ? AND id <> ?", profile.UserID, *upd.Name, profileID).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return &ProfileNameExistsError{UserID: profile.UserID, Name: *upd.Name}
			}
		}

		changes := upd.changes()
		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&profile).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&profile, profileID).Error
	})
	if isUniqueViolation(err) {
		name := profile.Name
		if upd.Name != nil {
			name = *upd.Name
		}
		return nil, &ProfileNameExistsError{UserID: profile.UserID, Name: name}
	}
	if err != nil {
		return nil, classifyStorage(err)
	}
	return &profile, nil
}

// Get fetches a profile by id.
func (s *ProfileService) Get(ctx context.Context, profileID int64) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, classifyStorage(err)
	}
	return &profile, nil
}

// Delete removes a profile. Deleting an absent profile reports
// ErrProfileNotFound; sibling profiles and the owning user are unaffected.
func (s *ProfileService) Delete(ctx context.Context, profileID int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Profile{}, profileID)
	if res.Error != nil {
		return classifyStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// List returns all profiles of a user in creation order. A user with no
// profiles gets an empty list, not an error.
func (s *ProfileService) List(ctx context.Context, userID int64) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&profiles).Error; err != nil {
		return nil, classifyStorage(err)
	}
	return profiles, nil
}
