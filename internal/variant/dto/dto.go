package dto

import "github.com/mecommerce/catalog-service/internal/model"

// VariantList is the paged search response.
type VariantList struct {
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Items      []model.Variant `json:"items"`
}
