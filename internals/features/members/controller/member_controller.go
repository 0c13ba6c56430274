// file: internals/features/members/controller/member_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"linksclub_backend/internals/features/members/dto"
	"linksclub_backend/internals/features/members/model"
	"linksclub_backend/internals/features/members/service"
	helper "linksclub_backend/internals/helpers"
)

var validate = validator.New()

type MemberHandler struct {
	DB *gorm.DB
}

var memberSortable = map[string]string{
	"created_at":  "member_created_at",
	"updated_at":  "member_updated_at",
	"club_number": "member_club_number",
	"last_name":   "member_last_name",
	"category":    "member_category",
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// -----------------------------------------
// List (GET /api/a/members)
// Query filters (optional):
// - category, home_away, payment_method, q (name search), has_locker
// - sort_by (created_at|updated_at|club_number|last_name|category), order
// - page, per_page
// -----------------------------------------
func (h *MemberHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "last_name", "asc", helper.AdminOpts)

	q := h.DB.Model(&model.MemberModel{})

	if v := c.Query("category"); v != "" {
		q = q.Where("LOWER(member_category) = ?", strings.ToLower(v))
	}
	if v := c.Query("home_away"); v != "" {
		q = q.Where("member_home_away = ?", strings.ToUpper(v))
	}
	if v := c.Query("payment_method"); v != "" {
		q = q.Where("member_payment_method = ?", v)
	}
	if v := c.Query("q"); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(member_first_name) LIKE ? OR LOWER(member_last_name) LIKE ?", like, like)
	}
	if v := c.Query("has_locker"); v != "" {
		if strings.EqualFold(v, "true") {
			q = q.Where("member_locker_number IS NOT NULL AND member_locker_number <> ''")
		} else if strings.EqualFold(v, "false") {
			q = q.Where("member_locker_number IS NULL OR member_locker_number = ''")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(memberSortable, "last_name")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.MemberModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.ToMemberResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// GetByID (GET /api/a/members/:id)
// -----------------------------------------
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.MemberModel
	if err := h.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToMemberResponse(m))
}

// -----------------------------------------
// Create (POST /api/a/members)
// An empty category gets the age-appropriate default band.
// -----------------------------------------
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var in dto.MemberCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := dto.MemberCreateDTOToModel(in)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid date format, want YYYY-MM-DD")
	}
	if strings.TrimSpace(m.MemberCategory) == "" {
		m.MemberCategory = service.DefaultCategory(m, time.Now())
	}

	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "club number already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "member created", dto.ToMemberResponse(m))
}

// -----------------------------------------
// Update (PATCH /api/a/members/:id)
// -----------------------------------------
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.MemberUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.MemberModel
	if err := h.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := dto.ApplyMemberUpdate(&m, in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid date format, want YYYY-MM-DD")
	}

	if err := h.DB.Save(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "club number already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "member updated", dto.ToMemberResponse(m))
}

// -----------------------------------------
// Delete (DELETE /api/a/members/:id), soft delete
// -----------------------------------------
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	res := h.DB.Delete(&model.MemberModel{}, "member_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "member not found")
	}
	return helper.JsonDeleted(c, "member deleted", fiber.Map{"member_id": id})
}
