package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"linksclub_backend/internals/features/finance/directdebit/controller"
)

// DirectDebitAdminRoutes registers DD schedule endpoints under /api/a.
func DirectDebitAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.ScheduleHandler{DB: db}

	g := admin.Group("/direct-debit")
	g.Get("/members/:id/schedule", h.MemberSchedule)
	g.Post("/consolidated", h.ConsolidatedSchedule)
	g.Get("/schedules/export.csv", h.ExportCSV)
}
