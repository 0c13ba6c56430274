// file: internals/features/members/controller/category_review_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"linksclub_backend/internals/features/members/model"
	"linksclub_backend/internals/features/members/service"
	helper "linksclub_backend/internals/helpers"
)

type CategoryReviewHandler struct {
	DB *gorm.DB
}

type categoryReviewRow struct {
	MemberID        uuid.UUID `json:"member_id"`
	MemberName      string    `json:"member_name"`
	ClubNumber      int       `json:"club_number"`
	CurrentCategory string    `json:"current_category"`
	NewCategory     *string   `json:"new_category,omitempty"`
	Reason          string    `json:"reason"`
}

func reviewReferenceDate(c *fiber.Ctx) time.Time {
	if v := c.Query("date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Now()
}

// -----------------------------------------
// Preview (GET /api/a/members/category-review?date=YYYY-MM-DD&changes_only=true)
// Runs the category rules over every member without writing anything.
// -----------------------------------------
func (h *CategoryReviewHandler) Preview(c *fiber.Ctx) error {
	ref := reviewReferenceDate(c)
	changesOnly := c.QueryBool("changes_only", true)

	var members []model.MemberModel
	if err := h.DB.Order("member_club_number ASC").Find(&members).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	rows := make([]categoryReviewRow, 0, len(members))
	for _, m := range members {
		rec := service.CalculateSubscriptionType(m, ref)
		if changesOnly && rec.NewCategory == nil {
			continue
		}
		rows = append(rows, categoryReviewRow{
			MemberID:        m.MemberID,
			MemberName:      m.FullName(),
			ClubNumber:      m.MemberClubNumber,
			CurrentCategory: m.MemberCategory,
			NewCategory:     rec.NewCategory,
			Reason:          rec.Reason,
		})
	}

	return helper.JsonOK(c, "", fiber.Map{
		"reference_date": ref.Format("2006-01-02"),
		"reviewed":       len(members),
		"changes":        rows,
	})
}

// -----------------------------------------
// ApplyOne (POST /api/a/members/:id/category-review/apply)
// -----------------------------------------
func (h *CategoryReviewHandler) ApplyOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	ref := reviewReferenceDate(c)

	var m model.MemberModel
	if err := h.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	rec := service.CalculateSubscriptionType(m, ref)
	if rec.NewCategory == nil {
		return helper.JsonOK(c, "no change", fiber.Map{
			"member_id": m.MemberID,
			"category":  m.MemberCategory,
			"reason":    rec.Reason,
		})
	}

	old := m.MemberCategory
	m.MemberCategory = *rec.NewCategory
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	log.Printf("[CATEGORY] member %d: %s -> %s (%s)", m.MemberClubNumber, old, m.MemberCategory, rec.Reason)

	return helper.JsonUpdated(c, "category updated", fiber.Map{
		"member_id":     m.MemberID,
		"old_category":  old,
		"new_category":  m.MemberCategory,
		"reason":        rec.Reason,
	})
}

// -----------------------------------------
// ApplyAll (POST /api/a/members/category-review/apply-all)
// Fail-soft per member: one bad record never aborts the sweep.
// -----------------------------------------
func (h *CategoryReviewHandler) ApplyAll(c *fiber.Ctx) error {
	ref := reviewReferenceDate(c)

	var members []model.MemberModel
	if err := h.DB.Order("member_club_number ASC").Find(&members).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	applied := 0
	failed := 0
	errs := []string{}
	changes := make([]categoryReviewRow, 0)

	for _, m := range members {
		rec := service.CalculateSubscriptionType(m, ref)
		if rec.NewCategory == nil {
			continue
		}
		old := m.MemberCategory
		m.MemberCategory = *rec.NewCategory
		if err := h.DB.Model(&model.MemberModel{}).
			Where("member_id = ?", m.MemberID).
			Update("member_category", m.MemberCategory).Error; err != nil {
			failed++
			errs = append(errs, m.FullName()+": "+err.Error())
			continue
		}
		applied++
		changes = append(changes, categoryReviewRow{
			MemberID:        m.MemberID,
			MemberName:      m.FullName(),
			ClubNumber:      m.MemberClubNumber,
			CurrentCategory: old,
			NewCategory:     rec.NewCategory,
			Reason:          rec.Reason,
		})
	}

	return helper.JsonOK(c, "category review applied", fiber.Map{
		"reference_date": ref.Format("2006-01-02"),
		"reviewed":       len(members),
		"applied":        applied,
		"failed":         failed,
		"errors":         errs,
		"changes":        changes,
	})
}
