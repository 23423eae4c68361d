package handlers

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/moviplay/user-service/internal/dto"
	"github.com/moviplay/user-service/internal/services"
	"gorm.io/datatypes"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	timeout        time.Duration
}

func NewProfileHandler(profileService *services.ProfileService, timeout time.Duration) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, timeout: timeout}
}

func (h *ProfileHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}

func validProfileName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= 50
}

func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	userID, ok := positiveParam(c, "user_id")
	if !ok {
		return badRequest(c, dto.ReasonInvalidID, "Invalid user_id. Must be a positive integer.",
			dto.FieldViolation{Field: "user_id", Description: "Must be greater than 0"})
	}

	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, dto.ReasonInvalidArgument, "Invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if !validProfileName(name) {
		return badRequest(c, dto.ReasonInvalidArgument, "Profile name must be 1-50 characters.",
			dto.FieldViolation{Field: "name", Description: "Must be 1-50 characters"})
	}

	in := services.CreateProfileInput{
		Name:          name,
		IsKids:        req.IsKids,
		Avatar:        req.Avatar,
		Language:      req.Language,
		MaturityLevel: req.MaturityLevel,
	}
	if len(req.Preferences) > 0 {
		in.Preferences = datatypes.JSON(req.Preferences)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	profile, err := h.profileService.Create(ctx, userID, in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) List(c *fiber.Ctx) error {
	userID, ok := positiveParam(c, "user_id")
	if !ok {
		return badRequest(c, dto.ReasonInvalidID, "Invalid user_id. Must be a positive integer.",
			dto.FieldViolation{Field: "user_id", Description: "Must be greater than 0"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	profiles, err := h.profileService.List(ctx, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewListProfilesResponse(profiles))
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	id, ok := positiveParam(c, "id")
	if !ok {
		return badRequest(c, dto.ReasonInvalidID, "Invalid profile_id. Must be a positive integer.",
			dto.FieldViolation{Field: "profile_id", Description: "Must be greater than 0"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	profile, err := h.profileService.Get(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	id, ok := positiveParam(c, "id")
	if !ok {
		return badRequest(c, dto.ReasonInvalidID, "Invalid profile_id. Must be a positive integer.",
			dto.FieldViolation{Field: "profile_id", Description: "Must be greater than 0"})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, dto.ReasonInvalidArgument, "Invalid request body")
	}

	upd := services.ProfileUpdate{
		IsKids:        req.IsKids,
		Avatar:        req.Avatar,
		Language:      req.Language,
		MaturityLevel: req.MaturityLevel,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !validProfileName(name) {
			return badRequest(c, dto.ReasonInvalidArgument, "Profile name must be 1-50 characters.",
				dto.FieldViolation{Field: "name", Description: "Must be 1-50 characters"})
		}
		upd.Name = &name
	}
	if len(req.Preferences) > 0 {
		upd.Preferences = datatypes.JSON(req.Preferences)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	profile, err := h.profileService.Update(ctx, id, upd)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	id, ok := positiveParam(c, "id")
	if !ok {
		return badRequest(c, dto.ReasonInvalidID, "Invalid profile_id. Must be a positive integer.",
			dto.FieldViolation{Field: "profile_id", Description: "Must be greater than 0"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.profileService.Delete(ctx, id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.DeleteProfileResponse{Success: true})
}
