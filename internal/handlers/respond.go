package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/moviplay/user-service/internal/dto"
	"github.com/moviplay/user-service/internal/services"
)

// serviceError translates a service-level failure into its wire status and
// reason code. Conflict errors keep their identifying detail; unrecognized
// errors are logged and reported as internal faults.
func serviceError(c *fiber.Ctx, err error) error {
	var collision *services.IdentityCollisionError
	if errors.As(err, &collision) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error:   true,
			Code:    dto.ReasonIdentityConflict,
			Message: "Provided identifiers match multiple existing users.",
			Details: map[string]interface{}{"conflicting_user_ids": collision.UserIDs},
		})
	}

	var limit *services.ProfileLimitError
	if errors.As(err, &limit) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error:   true,
			Code:    dto.ReasonProfileLimitReached,
			Message: "Maximum number of profiles per user reached.",
			Details: map[string]interface{}{"user_id": limit.UserID, "current_count": limit.Count},
		})
	}

	var nameExists *services.ProfileNameExistsError
	if errors.As(err, &nameExists) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error:   true,
			Code:    dto.ReasonProfileNameExists,
			Message: "Profile name '" + nameExists.Name + "' already exists for this user.",
			Fields:  []dto.FieldViolation{{Field: "name", Description: "Name already in use"}},
		})
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Code: dto.ReasonUserNotFound, Message: "User not found.",
		})
	case errors.Is(err, services.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Code: dto.ReasonProfileNotFound, Message: "Profile not found.",
		})
	case errors.Is(err, services.ErrStorageTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{
			Error: true, Code: dto.ReasonDBTimeout, Message: "Database request timed out.",
		})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Code: dto.ReasonDBUnavailable, Message: "Database is temporarily unavailable.",
		})
	}

	slog.Error("unclassified service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Code: dto.ReasonInternalError, Message: "An internal error occurred.",
	})
}

func badRequest(c *fiber.Ctx, code, message string, fields ...dto.FieldViolation) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Code: code, Message: message, Fields: fields,
	})
}

// positiveParam parses a path parameter that must be a positive integer id.
func positiveParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
