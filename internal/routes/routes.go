package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moviplay/user-service/internal/config"
	"github.com/moviplay/user-service/internal/handlers"
	"github.com/moviplay/user-service/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	userHandler *handlers.UserHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Identity resolution — public entry point; issues the access token
	// the protected routes expect.
	api.Post("/users", userHandler.Resolve)

	// Users (JWT required)
	api.Get("/users/:id", middleware.JWTProtected(cfg), userHandler.Get)

	// Profiles (JWT required)
	api.Post("/users/:user_id/profiles", middleware.JWTProtected(cfg), profileHandler.Create)
	api.Get("/users/:user_id/profiles", middleware.JWTProtected(cfg), profileHandler.List)
	api.Get("/profiles/:id", middleware.JWTProtected(cfg), profileHandler.Get)
	api.Patch("/profiles/:id", middleware.JWTProtected(cfg), profileHandler.Update)
	api.Delete("/profiles/:id", middleware.JWTProtected(cfg), profileHandler.Delete)

	// Admin operations (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Put("/users/:id/password", userHandler.SetPassword)
	admin.Delete("/users/:id", userHandler.Delete)
}
