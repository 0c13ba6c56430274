// file: internals/features/finance/invoices/controller/invoice_controller.go
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"linksclub_backend/internals/constants"
	"linksclub_backend/internals/features/finance/invoices/dto"
	"linksclub_backend/internals/features/finance/invoices/model"
	"linksclub_backend/internals/features/finance/invoices/service"
	feeservice "linksclub_backend/internals/features/finance/fees/service"
	helper "linksclub_backend/internals/helpers"
)

type InvoiceHandler struct {
	DB *gorm.DB
}

var invoiceSortable = map[string]string{
	"created_at": "invoice_created_at",
	"number":     "invoice_number",
	"total":      "invoice_total",
	"status":     "invoice_status",
}

// -----------------------------------------
// List (GET /api/a/invoices)
// Query filters: member_id, status, year, page/per_page/sort
// -----------------------------------------
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.Model(&model.InvoiceModel{})
	if v := c.Query("member_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("invoice_member_id = ?", id)
		}
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("invoice_status = ?", v)
	}
	if y := c.QueryInt("year"); y > 0 {
		q = q.Where("invoice_number LIKE ?", fmt.Sprintf("INV-%d-%%", y))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(invoiceSortable, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.InvoiceModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", dto.ToInvoiceResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// GetByID (GET /api/a/invoices/:id), items included
// -----------------------------------------
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.InvoiceModel
	if err := h.DB.Preload("InvoiceItems").First(&m, "invoice_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToInvoiceResponse(m))
}

// -----------------------------------------
// GenerateForMember (POST /api/a/invoices/generate)
// Body: {"member_id": "...", "year": 2026, "is_dd": false, "is_social": false}
// -----------------------------------------
func (h *InvoiceHandler) GenerateForMember(c *fiber.Ctx) error {
	var in struct {
		MemberID uuid.UUID `json:"member_id"`
		Year     int       `json:"year"`
		IsDD     bool      `json:"is_dd"`
		IsSocial bool      `json:"is_social"`
	}
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if in.MemberID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "member_id is required")
	}
	if in.Year == 0 {
		in.Year = time.Now().Year()
	}

	w := service.NewInvoiceWriter(h.DB)
	res, err := w.GenerateForMember(in.MemberID, service.GenerateOptions{
		Year: in.Year, IsDD: in.IsDD, IsSocial: in.IsSocial,
	})
	if err != nil {
		if errors.Is(err, feeservice.ErrNoSubscriptionFee) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if res.AlreadyExists {
		return helper.JsonOK(c, "already_exists", res)
	}
	return helper.JsonCreated(c, "invoice generated", res)
}

// -----------------------------------------
// GenerateBatch (POST /api/a/invoices/generate-batch)
// Body: {"year": 2026}. Processes at most one batch; call again while
// remaining > 0.
// -----------------------------------------
func (h *InvoiceHandler) GenerateBatch(c *fiber.Ctx) error {
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
	if in.BatchSize <= 0 || in.BatchSize > constants.BulkBatchSize {
		in.BatchSize = constants.BulkBatchSize
	}

	w := service.NewInvoiceWriter(h.DB)
	res, err := w.BulkGenerate(in.Year, in.BatchSize)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "batch processed", res)
}

// -----------------------------------------
// Delete (DELETE /api/a/invoices/:id)
// Cascades payment line items -> payments -> items -> invoice and reverses
// the balance for draft invoices.
// -----------------------------------------
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	w := service.NewInvoiceWriter(h.DB)
	if err := w.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "invoice deleted", fiber.Map{"invoice_id": id})
}
