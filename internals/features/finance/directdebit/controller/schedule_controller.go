// file: internals/features/finance/directdebit/controller/schedule_controller.go
package controller

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	membermodel "linksclub_backend/internals/features/members/model"
	"linksclub_backend/internals/features/finance/directdebit/service"
	feeservice "linksclub_backend/internals/features/finance/fees/service"
	helper "linksclub_backend/internals/helpers"
)

type ScheduleHandler struct {
	DB *gorm.DB
}

func scheduleYear(c *fiber.Ctx) int {
	if y := c.QueryInt("year"); y > 0 {
		return y
	}
	return time.Now().Year()
}

// -----------------------------------------
// MemberSchedule (GET /api/a/direct-debit/members/:id/schedule?year=)
// -----------------------------------------
func (h *ScheduleHandler) MemberSchedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	year := scheduleYear(c)

	var m membermodel.MemberModel
	if err := h.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	sub, err := feeservice.LookupSubscriptionFee(h.DB, m.MemberCategory)
	if err != nil {
		if errors.Is(err, feeservice.ErrNoSubscriptionFee) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	amounts := feeservice.LoadFeeAmounts(h.DB)
	sched := service.CalculateSchedule(feeservice.ProfileFromMember(m), sub.FeeItemAmount, year, amounts)
	return helper.JsonOK(c, "", fiber.Map{
		"member_id":        m.MemberID,
		"schedule":         sched,
		"collection_dates": sched.CollectionDates(),
		"annual_total":     sched.AnnualTotal(),
	})
}

// -----------------------------------------
// ConsolidatedSchedule (POST /api/a/direct-debit/consolidated?year=)
// Body: {"member_ids": [...]}: payer plus dependants on one mandate.
// -----------------------------------------
func (h *ScheduleHandler) ConsolidatedSchedule(c *fiber.Ctx) error {
	var in struct {
		MemberIDs []uuid.UUID `json:"member_ids"`
	}
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if len(in.MemberIDs) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "member_ids is required")
	}
	year := scheduleYear(c)
	amounts := feeservice.LoadFeeAmounts(h.DB)

	schedules := make([]service.PaymentSchedule, 0, len(in.MemberIDs))
	skipped := []string{}
	for _, id := range in.MemberIDs {
		var m membermodel.MemberModel
		if err := h.DB.First(&m, "member_id = ?", id).Error; err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: not found", id))
			continue
		}
		sub, err := feeservice.LookupSubscriptionFee(h.DB, m.MemberCategory)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: %v", m.FullName(), err))
			continue
		}
		schedules = append(schedules, service.CalculateSchedule(feeservice.ProfileFromMember(m), sub.FeeItemAmount, year, amounts))
	}
	if len(schedules) == 0 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "no schedulable members in member_ids")
	}

	consolidated := service.Consolidate(schedules)
	return helper.JsonOK(c, "", fiber.Map{
		"schedule":     consolidated,
		"members":      len(schedules),
		"skipped":      skipped,
		"annual_total": consolidated.AnnualTotal(),
	})
}

// -----------------------------------------
// ExportCSV (GET /api/a/direct-debit/schedules/export.csv?year=)
// -----------------------------------------
func (h *ScheduleHandler) ExportCSV(c *fiber.Ctx) error {
	year := scheduleYear(c)
	amounts := feeservice.LoadFeeAmounts(h.DB)

	rows, err := service.BuildExportRows(h.DB, year, amounts)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	if err := service.WriteScheduleCSV(&buf, rows); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="dd-schedules-%d.csv"`, year))
	return c.Send(buf.Bytes())
}
