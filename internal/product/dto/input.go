package dto

import (
	"time"

	"github.com/mecommerce/catalog-service/internal/model"
)

type CreateProductInput struct {
	Name            string            `json:"name" validate:"required"`
	SKU             string            `json:"sku" validate:"required"`
	Description     string            `json:"description" validate:"required"`
	URLKey          string            `json:"urlKey" validate:"required"`
	MetaTitle       string            `json:"metaTitle" validate:"required"`
	MetaDescription string            `json:"metaDescription" validate:"required"`
	CreatedByUserID string            `json:"createdByUserId" validate:"required,uuid"`
	Type            model.ProductType `json:"type" validate:"omitempty,oneof=simple configurable virtual downloadable bundle grouped gift_card customizable subscription"`
	IsActive        bool              `json:"isActive"`
	InStock         bool              `json:"inStock"`
	IsVisible       bool              `json:"isVisible"`
	NewFromDate     *time.Time        `json:"newFromDate"`
	NewToDate       *time.Time        `json:"newToDate"`
}

// UpdateProductInput overwrites all mutable fields of a product.
type UpdateProductInput struct {
	Name            string            `json:"name" validate:"required"`
	SKU             string            `json:"sku" validate:"required"`
	Description     string            `json:"description" validate:"required"`
	URLKey          string            `json:"urlKey" validate:"required"`
	MetaTitle       string            `json:"metaTitle" validate:"required"`
	MetaDescription string            `json:"metaDescription" validate:"required"`
	CreatedByUserID string            `json:"createdByUserId" validate:"required,uuid"`
	Type            model.ProductType `json:"type" validate:"omitempty,oneof=simple configurable virtual downloadable bundle grouped gift_card customizable subscription"`
	IsActive        bool              `json:"isActive"`
	InStock         bool              `json:"inStock"`
	IsVisible       bool              `json:"isVisible"`
	NewFromDate     *time.Time        `json:"newFromDate"`
	NewToDate       *time.Time        `json:"newToDate"`
}
