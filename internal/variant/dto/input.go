package dto

// CreateVariantInput is one item of a batch variant creation request.
// Every referenced parent product ID must exist; the variant row is
// linked to the first listed parent.
type CreateVariantInput struct {
	ParentProductIDs []string `json:"parentProductIds" validate:"required,min=1,dive,uuid"`
	Name             string   `json:"name" validate:"required"`
	SKU              string   `json:"sku" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	URLKey           string   `json:"urlKey" validate:"required"`
	MetaTitle        string   `json:"metaTitle" validate:"required"`
	MetaDescription  string   `json:"metaDescription" validate:"required"`
	IsActive         bool     `json:"isActive"`
	InStock          bool     `json:"inStock"`
	IsVisible        bool     `json:"isVisible"`
}

// UpdateVariantInput overwrites all mutable fields of a variant.
type UpdateVariantInput struct {
	Name            string `json:"name" validate:"required"`
	SKU             string `json:"sku" validate:"required"`
	Description     string `json:"description" validate:"required"`
	URLKey          string `json:"urlKey" validate:"required"`
	MetaTitle       string `json:"metaTitle" validate:"required"`
	MetaDescription string `json:"metaDescription" validate:"required"`
	IsActive        bool   `json:"isActive"`
	InStock         bool   `json:"inStock"`
	IsVisible       bool   `json:"isVisible"`
}
