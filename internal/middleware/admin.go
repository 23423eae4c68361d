package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/moviplay/user-service/internal/config"
	"github.com/moviplay/user-service/internal/dto"
	"github.com/moviplay/user-service/internal/models"
	"gorm.io/gorm"
)

// AdminRequired grants access either via the configured admin token header
// or via the is_admin flag on the authenticated user's record. The flag is
// read from the database on every call so a revoked admin loses access
// before their token expires.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}

		sub, _ := claims["sub"].(string)
		if sub != "" {
			userID, err := strconv.ParseInt(sub, 10, 64)
			if err == nil {
				var user models.User
				if err := db.WithContext(c.UserContext()).Select("id", "is_admin").First(&user, userID).Error; err == nil && user.IsAdmin {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}
