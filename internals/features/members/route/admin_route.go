package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"linksclub_backend/internals/features/members/controller"
)

// MemberAdminRoutes registers member CRUD + category review under /api/a.
func MemberAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.MemberHandler{DB: db}
	r := &controller.CategoryReviewHandler{DB: db}

	g := admin.Group("/members")
	g.Get("/", h.List)
	g.Get("/category-review", r.Preview)
	g.Post("/category-review/apply-all", r.ApplyAll)
	g.Get("/:id", h.GetByID)
	g.Post("/", h.Create)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
	g.Post("/:id/category-review/apply", r.ApplyOne)
}
