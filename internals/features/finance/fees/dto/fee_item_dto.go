// file: internals/features/finance/fees/dto/fee_item_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"linksclub_backend/internals/features/finance/fees/model"
)

type FeeItemCreateDTO struct {
	FeeItemName     string          `json:"fee_item_name" validate:"required,max=80"`
	FeeItemCategory string          `json:"fee_item_category" validate:"required,oneof=Subscription Fee"`
	FeeItemAmount   decimal.Decimal `json:"fee_item_amount" validate:"required"`
	FeeItemIsActive *bool           `json:"fee_item_is_active,omitempty"`
}

type FeeItemUpdateDTO struct {
	FeeItemName     *string          `json:"fee_item_name,omitempty"`
	FeeItemCategory *string          `json:"fee_item_category,omitempty" validate:"omitempty,oneof=Subscription Fee"`
	FeeItemAmount   *decimal.Decimal `json:"fee_item_amount,omitempty"`
	FeeItemIsActive *bool            `json:"fee_item_is_active,omitempty"`
}

type FeeItemResponse struct {
	FeeItemID       uuid.UUID       `json:"fee_item_id"`
	FeeItemName     string          `json:"fee_item_name"`
	FeeItemCategory string          `json:"fee_item_category"`
	FeeItemAmount   decimal.Decimal `json:"fee_item_amount"`
	FeeItemIsActive bool            `json:"fee_item_is_active"`
	FeeItemCreatedAt time.Time      `json:"fee_item_created_at"`
	FeeItemUpdatedAt time.Time      `json:"fee_item_updated_at"`
}

func ToFeeItemResponse(m model.FeeItemModel) FeeItemResponse {
	return FeeItemResponse{
		FeeItemID:        m.FeeItemID,
		FeeItemName:      m.FeeItemName,
		FeeItemCategory:  m.FeeItemCategory,
		FeeItemAmount:    m.FeeItemAmount,
		FeeItemIsActive:  m.FeeItemIsActive,
		FeeItemCreatedAt: m.FeeItemCreatedAt,
		FeeItemUpdatedAt: m.FeeItemUpdatedAt,
	}
}

func ToFeeItemResponses(list []model.FeeItemModel) []FeeItemResponse {
	out := make([]FeeItemResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToFeeItemResponse(m))
	}
	return out
}

func FeeItemCreateDTOToModel(in FeeItemCreateDTO) model.FeeItemModel {
	m := model.FeeItemModel{
		FeeItemName:     in.FeeItemName,
		FeeItemCategory: in.FeeItemCategory,
		FeeItemAmount:   in.FeeItemAmount,
		FeeItemIsActive: true,
	}
	if in.FeeItemIsActive != nil {
		m.FeeItemIsActive = *in.FeeItemIsActive
	}
	return m
}

func ApplyFeeItemUpdate(m *model.FeeItemModel, in FeeItemUpdateDTO) {
	if in.FeeItemName != nil {
		m.FeeItemName = *in.FeeItemName
	}
	if in.FeeItemCategory != nil {
		m.FeeItemCategory = *in.FeeItemCategory
	}
	if in.FeeItemAmount != nil {
		m.FeeItemAmount = *in.FeeItemAmount
	}
	if in.FeeItemIsActive != nil {
		m.FeeItemIsActive = *in.FeeItemIsActive
	}
}
