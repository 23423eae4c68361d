package dto

import (
	"time"

	"github.com/moviplay/user-service/internal/models"
)

// ResolveUserRequest carries up to five identifiers; empty means "not
// supplied". At least one must be non-empty.
type ResolveUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	GoogleID    string `json:"google_id"`
	AppleID     string `json:"apple_id"`
}

type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	GoogleID    string    `json:"google_id"`
	AppleID     string    `json:"apple_id"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ResolveUserResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

type SetPasswordRequest struct {
	Password string `json:"password"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    deref(u.Username),
		Email:       deref(u.Email),
		PhoneNumber: deref(u.PhoneNumber),
		GoogleID:    deref(u.GoogleID),
		AppleID:     deref(u.AppleID),
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
