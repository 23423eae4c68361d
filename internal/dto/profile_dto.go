package dto

import (
	"encoding/json"
	"time"

	"github.com/moviplay/user-service/internal/models"
)

type CreateProfileRequest struct {
	Name          string          `json:"name"`
	IsKids        bool            `json:"is_kids"`
	Avatar        string          `json:"avatar"`
	Language      string          `json:"language"`
	MaturityLevel string          `json:"maturity_level"`
	Preferences   json.RawMessage `json:"preferences"`
}

// UpdateProfileRequest distinguishes "field absent" (nil, leave as is)
// from "field set to its zero value".
type UpdateProfileRequest struct {
	Name          *string         `json:"name"`
	IsKids        *bool           `json:"is_kids"`
	Avatar        *string         `json:"avatar"`
	Language      *string         `json:"language"`
	MaturityLevel *string         `json:"maturity_level"`
	Preferences   json.RawMessage `json:"preferences"`
}

type ProfileResponse struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Name          string          `json:"name"`
	IsKids        bool            `json:"is_kids"`
	Avatar        string          `json:"avatar"`
	Language      string          `json:"language"`
	MaturityLevel string          `json:"maturity_level"`
	Preferences   json.RawMessage `json:"preferences"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ListProfilesResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}

type DeleteProfileResponse struct {
	Success bool `json:"success"`
}

func NewProfileResponse(p *models.Profile) ProfileResponse {
	prefs := json.RawMessage(p.Preferences)
	if len(prefs) == 0 {
		prefs = json.RawMessage("[]")
	}
	return ProfileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Name:          p.Name,
		IsKids:        p.IsKids,
		Avatar:        p.Avatar,
		Language:      p.Language,
		MaturityLevel: p.MaturityLevel,
		Preferences:   prefs,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func NewListProfilesResponse(profiles []models.Profile) ListProfilesResponse {
	out := ListProfilesResponse{Profiles: make([]ProfileResponse, 0, len(profiles))}
	for i := range profiles {
		out.Profiles = append(out.Profiles, NewProfileResponse(&profiles[i]))
	}
	return out
}
