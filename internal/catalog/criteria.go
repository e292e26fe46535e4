package catalog

import (
	"strconv"
	"strings"
	"time"
)

// SearchCriteria selects which columns participate in a free-text
// OR-search. The date-range and user/type flags only apply to products;
// variants carry just the shared column set.
type SearchCriteria struct {
	Name            bool `json:"name"`
	SKU             bool `json:"sku"`
	Description     bool `json:"description"`
	URLKey          bool `json:"urlKey"`
	MetaTitle       bool `json:"metaTitle"`
	MetaDescription bool `json:"metaDescription"`
	CreatedByUserID bool `json:"createdByUserId"`
	IsActive        bool `json:"isActive"`
	InStock         bool `json:"inStock"`
	IsVisible       bool `json:"isVisible"`
	Type            bool `json:"type"`
	NewFromDate     bool `json:"newFromDate"`
	NewToDate       bool `json:"newToDate"`
}

// Shared zeroes the product-only flags so the criteria can be applied
// to the variants table, which lacks those columns.
func (c SearchCriteria) Shared() SearchCriteria {
	c.CreatedByUserID = false
	c.Type = false
	c.NewFromDate = false
	c.NewToDate = false
	return c
}

// Predicates folds the enabled flags and the search value into a single
// disjunctive WHERE expression with named bind parameters. Rows whose
// id (cast to text) contains the value always match. Boolean and date
// flags compare against the parsed value; when the value does not parse
// the clause is skipped so the rest of the disjunction still applies.
func (c SearchCriteria) Predicates(value string) (string, map[string]interface{}) {
	// CAST instead of the :: shorthand: the clauses go through sqlx
	// named-query compilation, which reads :: as an escaped colon.
	clauses := []string{"CAST(id AS text) ILIKE :pattern"}
	args := map[string]interface{}{"pattern": "%" + value + "%"}

	text := func(on bool, column string) {
		if on {
			clauses = append(clauses, column+" ILIKE :pattern")
		}
	}
	text(c.Name, "name")
	text(c.SKU, "sku")
	text(c.Description, "description")
	text(c.URLKey, "url_key")
	text(c.MetaTitle, "meta_title")
	text(c.MetaDescription, "meta_description")
	if c.CreatedByUserID {
		clauses = append(clauses, "CAST(created_by_user_id AS text) ILIKE :pattern")
	}

	boolean := func(on bool, column string) {
		if !on {
			return
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return
		}
		args[column] = b
		clauses = append(clauses, column+" = :"+column)
	}
	boolean(c.IsActive, "is_active")
	boolean(c.InStock, "in_stock")
	boolean(c.IsVisible, "is_visible")

	if c.Type {
		args["type"] = value
		clauses = append(clauses, "type = :type")
	}

	if c.NewFromDate {
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			args["new_from_date"] = t
			clauses = append(clauses, "new_from_date >= :new_from_date")
		}
	}
	if c.NewToDate {
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			args["new_to_date"] = t
			clauses = append(clauses, "new_to_date <= :new_to_date")
		}
	}

	return "(" + strings.Join(clauses, " OR ") + ")", args
}

// SearchQuery is the fully composed filtered read the repositories run:
// one count query ignoring offset/limit plus one page query.
type SearchQuery struct {
	Where   string
	Args    map[string]interface{}
	OrderBy string // empty means storage order
	Limit   int
	Offset  int
}

// ProductSortColumns whitelists the API sort field names for products.
var ProductSortColumns = map[string]string{
	"name":        "name",
	"sku":         "sku",
	"urlKey":      "url_key",
	"type":        "type",
	"isActive":    "is_active",
	"inStock":     "in_stock",
	"isVisible":   "is_visible",
	"newFromDate": "new_from_date",
	"newToDate":   "new_to_date",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// VariantSortColumns whitelists the API sort field names for variants.
var VariantSortColumns = map[string]string{
	"name":      "name",
	"sku":       "sku",
	"urlKey":    "url_key",
	"isActive":  "is_active",
	"inStock":   "in_stock",
	"isVisible": "is_visible",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// OrderClause maps a Sort to an ORDER BY body through the column
// whitelist. Unknown fields fall back to storage order.
func OrderClause(s Sort, columns map[string]string) string {
	column, ok := columns[s.Field]
	if !ok {
		return ""
	}
	if strings.EqualFold(s.Order, "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}
