package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"linksclub_backend/internals/features/finance/invoices/controller"
)

// InvoiceAdminRoutes registers invoice endpoints under /api/a.
func InvoiceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.InvoiceHandler{DB: db}

	g := admin.Group("/invoices")
	g.Get("/", h.List)
	g.Post("/generate", h.GenerateForMember)
	g.Post("/generate-batch", h.GenerateBatch)
	g.Get("/:id", h.GetByID)
	g.Delete("/:id", h.Delete)
}
