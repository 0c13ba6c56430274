// file: internals/features/notices/controller/renewal_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feeservice "linksclub_backend/internals/features/finance/fees/service"
	membermodel "linksclub_backend/internals/features/members/model"
	"linksclub_backend/internals/features/notices/service"
	helper "linksclub_backend/internals/helpers"
)

type RenewalHandler struct {
	DB       *gorm.DB
	Notifier *service.Notifier
}

// -----------------------------------------
// Preview (GET /api/a/renewal-notices/members/:id/preview?year=)
// Renders the notice without sending it.
// -----------------------------------------
func (h *RenewalHandler) Preview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	year := c.QueryInt("year", time.Now().Year())

	var m membermodel.MemberModel
	if err := h.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	notice, err := service.BuildNotice(h.DB, m, year)
	if err != nil {
		if errors.Is(err, feeservice.ErrNoSubscriptionFee) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", notice)
}

// -----------------------------------------
// SendBatch (POST /api/a/renewal-notices/send-batch)
// Body: {"year": 2026, "batch_size": 40}. Processes at most one batch per
// call; re-invoke while remaining > 0.
// -----------------------------------------
func (h *RenewalHandler) SendBatch(c *fiber.Ctx) error {
	var in struct {
		Year      int `json:"year"`
		BatchSize int `json:"batch_size"`
	}
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if in.Year == 0 {
		in.Year = time.Now().Year()
	}

	s := service.NewSender(h.DB, h.Notifier)
	res, err := s.SendBatch(c.Context(), in.Year, in.BatchSize)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "batch processed", res)
}
