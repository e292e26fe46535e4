package model

import "time"

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CatalogFields is the descriptive column set shared by products and
// variants. Uniqueness is enforced per table on (name, sku, url_key).
type CatalogFields struct {
	Name            string `db:"name" json:"name"`
	SKU             string `db:"sku" json:"sku"`
	Description     string `db:"description" json:"description"`
	URLKey          string `db:"url_key" json:"urlKey"`
	MetaTitle       string `db:"meta_title" json:"metaTitle"`
	MetaDescription string `db:"meta_description" json:"metaDescription"`
	IsActive        bool   `db:"is_active" json:"isActive"`
	InStock         bool   `db:"in_stock" json:"inStock"`
	IsVisible       bool   `db:"is_visible" json:"isVisible"`
}
