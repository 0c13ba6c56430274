package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"linksclub_backend/internals/features/users/controller"
	"linksclub_backend/internals/middlewares"
)

// AuthRoutes registers the public login route.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	h := &controller.AuthHandler{DB: db}
	app.Post("/api/login", middlewares.LoginRateLimiter(), h.Login)
}

// MeRoutes registers routes that need an authenticated operator.
func MeRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.AuthHandler{DB: db}
	admin.Get("/me", h.Me)
}
