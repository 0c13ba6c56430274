package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"linksclub_backend/internals/features/notices/controller"
	"linksclub_backend/internals/features/notices/service"
)

// NoticeAdminRoutes registers renewal-notice endpoints under /api/a.
func NoticeAdminRoutes(admin fiber.Router, db *gorm.DB, notifier *service.Notifier) {
	h := &controller.RenewalHandler{DB: db, Notifier: notifier}

	g := admin.Group("/renewal-notices")
	g.Post("/send-batch", h.SendBatch)
	g.Get("/members/:id/preview", h.Preview)
}
