package variant

import (
	"context"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/model"
)

type Repository interface {
	// CreateBatch persists the whole batch in one transaction.
	CreateBatch(ctx context.Context, variants []model.Variant) error
	FindByID(ctx context.Context, id string) (*model.Variant, error)
	FindByIDs(ctx context.Context, ids []string, limit, offset int) ([]model.Variant, error)
	FindBySKUs(ctx context.Context, skus []string, limit, offset int) ([]model.Variant, error)
	Search(ctx context.Context, q catalog.SearchQuery) ([]model.Variant, int, error)
	Update(ctx context.Context, variant *model.Variant) error
	Delete(ctx context.Context, ids []string) (int64, error)

	FindConflicts(ctx context.Context, names, skus, urlKeys []string, excludeID string) ([]catalog.ConflictRow, error)

	// FindParentIDs returns the subset of ids that exist in the
	// products table.
	FindParentIDs(ctx context.Context, ids []string) ([]string, error)

	UpdateInStockBySKU(ctx context.Context, sku string, inStock bool) (int64, error)
}
