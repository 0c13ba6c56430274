// file: internals/features/finance/fees/controller/fee_item_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"linksclub_backend/internals/features/finance/fees/dto"
	"linksclub_backend/internals/features/finance/fees/model"
	helper "linksclub_backend/internals/helpers"
)

var validate = validator.New()

type FeeItemHandler struct {
	DB *gorm.DB
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// List (GET /api/a/fee-items?category=Subscription|Fee&active=true)
func (h *FeeItemHandler) List(c *fiber.Ctx) error {
	q := h.DB.Model(&model.FeeItemModel{})
	if v := c.Query("category"); v != "" {
		q = q.Where("fee_item_category = ?", v)
	}
	if v := c.Query("active"); v != "" {
		q = q.Where("fee_item_is_active = ?", strings.EqualFold(v, "true"))
	}
	var list []model.FeeItemModel
	if err := q.Order("fee_item_category ASC, fee_item_name ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToFeeItemResponses(list))
}

// Create (POST /api/a/fee-items)
func (h *FeeItemHandler) Create(c *fiber.Ctx) error {
	var in dto.FeeItemCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}
	m := dto.FeeItemCreateDTOToModel(in)
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee item with that name and category already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fee item created", dto.ToFeeItemResponse(m))
}

// Update (PATCH /api/a/fee-items/:id)
func (h *FeeItemHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.FeeItemUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}
	var m model.FeeItemModel
	if err := h.DB.First(&m, "fee_item_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee item not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	dto.ApplyFeeItemUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee item with that name and category already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "fee item updated", dto.ToFeeItemResponse(m))
}

// Delete (DELETE /api/a/fee-items/:id), soft delete
func (h *FeeItemHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	res := h.DB.Delete(&model.FeeItemModel{}, "fee_item_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "fee item not found")
	}
	return helper.JsonDeleted(c, "fee item deleted", fiber.Map{"fee_item_id": id})
}
