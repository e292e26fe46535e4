package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestPredicatesAlwaysMatchesID(t *testing.T) {
	where, args := SearchCriteria{}.Predicates("abc")

	require.Equal(t, "(CAST(id AS text) ILIKE :pattern)", where)
	require.Equal(t, "%abc%", args["pattern"])
}

func TestPredicatesTextColumns(t *testing.T) {
	c := SearchCriteria{Name: true, SKU: true, URLKey: true, MetaDescription: true}
	where, args := c.Predicates("shirt")

	require.Contains(t, where, "name ILIKE :pattern")
	require.Contains(t, where, "sku ILIKE :pattern")
	require.Contains(t, where, "url_key ILIKE :pattern")
	require.Contains(t, where, "meta_description ILIKE :pattern")
	require.Equal(t, "%shirt%", args["pattern"])
	require.True(t, strings.HasPrefix(where, "("))
	require.True(t, strings.HasSuffix(where, ")"))
}

func TestPredicatesBooleanParsesValue(t *testing.T) {
	c := SearchCriteria{IsActive: true, InStock: true}
	where, args := c.Predicates("true")

	require.Contains(t, where, "is_active = :is_active")
	require.Contains(t, where, "in_stock = :in_stock")
	require.Equal(t, true, args["is_active"])
	require.Equal(t, true, args["in_stock"])

	_, args = c.Predicates("false")
	require.Equal(t, false, args["is_active"])
}

func TestPredicatesBooleanSkippedWhenUnparsable(t *testing.T) {
	c := SearchCriteria{Name: true, IsActive: true}
	where, args := c.Predicates("shirt")

	require.NotContains(t, where, "is_active")
	require.Contains(t, where, "name ILIKE :pattern")
	_, ok := args["is_active"]
	require.False(t, ok)
}

func TestPredicatesDateParsesValue(t *testing.T) {
	c := SearchCriteria{NewFromDate: true, NewToDate: true}
	where, args := c.Predicates("2024-01-02T00:00:00Z")

	require.Contains(t, where, "new_from_date >= :new_from_date")
	require.Contains(t, where, "new_to_date <= :new_to_date")
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	require.Equal(t, want, args["new_from_date"])
	require.Equal(t, want, args["new_to_date"])
}

func TestPredicatesDateSkippedWhenUnparsable(t *testing.T) {
	c := SearchCriteria{NewFromDate: true, NewToDate: true}
	where, _ := c.Predicates("not-a-date")

	require.Equal(t, "(CAST(id AS text) ILIKE :pattern)", where)
}

func TestPredicatesType(t *testing.T) {
	where, args := SearchCriteria{Type: true}.Predicates("simple")

	require.Contains(t, where, "type = :type")
	require.Equal(t, "simple", args["type"])
}

// The column casts must survive sqlx named-query compilation, which
// would otherwise read a :: shorthand as an escaped colon and emit
// invalid SQL.
func TestPredicatesCompileAsNamedQuery(t *testing.T) {
	c := SearchCriteria{Name: true, CreatedByUserID: true, IsActive: true}
	where, args := c.Predicates("true")

	query, bound, err := sqlx.Named("SELECT count(*) FROM products WHERE "+where, args)
	require.NoError(t, err)

	require.Equal(t,
		"SELECT count(*) FROM products WHERE (CAST(id AS text) ILIKE ? OR name ILIKE ? OR CAST(created_by_user_id AS text) ILIKE ? OR is_active = ?)",
		query)
	require.NotContains(t, query, ":")
	require.Len(t, bound, 4)
}

func TestSharedDropsProductOnlyFlags(t *testing.T) {
	c := SearchCriteria{
		Name:            true,
		CreatedByUserID: true,
		Type:            true,
		NewFromDate:     true,
		NewToDate:       true,
	}
	shared := c.Shared()

	require.True(t, shared.Name)
	require.False(t, shared.CreatedByUserID)
	require.False(t, shared.Type)
	require.False(t, shared.NewFromDate)
	require.False(t, shared.NewToDate)
}

func TestOrderClause(t *testing.T) {
	require.Equal(t, "url_key ASC", OrderClause(Sort{Field: "urlKey", Order: "asc"}, ProductSortColumns))
	require.Equal(t, "created_at DESC", OrderClause(Sort{Field: "createdAt", Order: "DESC"}, ProductSortColumns))
	require.Equal(t, "name ASC", OrderClause(Sort{Field: "name"}, VariantSortColumns))
	require.Equal(t, "", OrderClause(Sort{Field: "type"}, VariantSortColumns))
	require.Equal(t, "", OrderClause(Sort{Field: "; DROP TABLE products"}, ProductSortColumns))
}
