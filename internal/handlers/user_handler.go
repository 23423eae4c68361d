package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/moviplay/user-service/internal/dto"
	"github.com/moviplay/user-service/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	timeout     time.Duration
}

func NewUserHandler(userService *services.UserService, timeout time.Duration) *UserHandler {
	return &UserHandler{userService: userService, timeout: timeout}
}

func (h *UserHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// Resolve creates or merges a user from the supplied identifiers.
func (h *UserHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, dto.ReasonInvalidArgument, "Invalid request body")
	}

	ids := services.Identifiers{
		{Field: services.FieldUsername, Value: req.Username},
		{Field: services.FieldEmail, Value: req.Email},
		{Field: services.FieldPhoneNumber, Value: req.PhoneNumber},
		{Field: services.FieldGoogleID, Value: req.GoogleID},
		{Field: services.FieldAppleID, Value: req.AppleID},
	}
	if len(ids.Supplied()) == 0 {
		return badRequest(c, dto.ReasonInvalidArgument,
			"At least one identifier (email, phone_number, google_id, apple_id, or username) is required.")
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.userService.ResolveAndMerge(ctx, ids)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := h.userService.AccessToken(user)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ResolveUserResponse{
		User:        dto.NewUserResponse(user),
		AccessToken: token,
	})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := positiveParam(c, "id")
	if !ok {
		return badRequest(c, dto.ReasonInvalidID, "Invalid user_id. Must be a positive integer.",
			dto.FieldViolation{Field: "user_id", Description: "Must be greater than 0"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.userService.Get(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete removes a user and, through the same transaction, every profile
// the user owns. Admin only.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := positiveParam(c, "id")
	if !ok {
		return badRequest(c, dto.ReasonInvalidID, "Invalid user_id. Must be a positive integer.",
			dto.FieldViolation{Field: "user_id", Description: "Must be greater than 0"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.userService.Delete(ctx, id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// SetPassword stores a password hash for a user. Admin only.
func (h *UserHandler) SetPassword(c *fiber.Ctx) error {
	id, ok := positiveParam(c, "id")
	if !ok {
		return badRequest(c, dto.ReasonInvalidID, "Invalid user_id. Must be a positive integer.",
			dto.FieldViolation{Field: "user_id", Description: "Must be greater than 0"})
	}

	var req dto.SetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, dto.ReasonInvalidArgument, "Invalid request body")
	}
	if len(req.Password) < 8 {
		return badRequest(c, dto.ReasonInvalidArgument, "Password must be at least 8 characters.",
			dto.FieldViolation{Field: "password", Description: "Must be at least 8 characters"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.userService.SetPassword(ctx, id, req.Password); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
