package dto

import "github.com/mecommerce/catalog-service/internal/model"

// ProductList is the paged search response.
type ProductList struct {
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Items      []model.Product `json:"items"`
}
