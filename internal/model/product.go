package model

import "time"

type ProductType string

const (
	TypeSimple       ProductType = "simple"
	TypeConfigurable ProductType = "configurable"
	TypeVirtual      ProductType = "virtual"
	TypeDownloadable ProductType = "downloadable"
	TypeBundle       ProductType = "bundle"
	TypeGrouped      ProductType = "grouped"
	TypeGiftCard     ProductType = "gift_card"
	TypeCustomizable ProductType = "customizable"
	TypeSubscription ProductType = "subscription"
)

func (t ProductType) Valid() bool {
	switch t {
	case TypeSimple, TypeConfigurable, TypeVirtual, TypeDownloadable,
		TypeBundle, TypeGrouped, TypeGiftCard, TypeCustomizable, TypeSubscription:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	CatalogFields
	Type            ProductType `db:"type" json:"type"`
	CreatedByUserID string      `db:"created_by_user_id" json:"createdByUserId"`
	NewFromDate     *time.Time  `db:"new_from_date" json:"newFromDate"`
	NewToDate       *time.Time  `db:"new_to_date" json:"newToDate"`
	Variants        []Variant   `db:"-" json:"variants,omitempty"` // Not in DB table directly
}

type Variant struct {
	BaseModel
	CatalogFields
	ParentProductID string `db:"parent_product_id" json:"parentProductId"`
}
