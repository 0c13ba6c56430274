package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"linksclub_backend/internals/features/finance/fees/controller"
)

// FeeItemAdminRoutes registers fee reference data CRUD under /api/a.
func FeeItemAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.FeeItemHandler{DB: db}

	g := admin.Group("/fee-items")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
