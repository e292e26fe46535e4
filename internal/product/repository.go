package product

import (
	"context"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string, limit, offset int) ([]model.Product, error)
	FindBySKUs(ctx context.Context, skus []string, limit, offset int) ([]model.Product, error)
	Search(ctx context.Context, q catalog.SearchQuery) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, ids []string) (int64, error)

	// FindConflicts selects rows sharing any of the uniqueness fields,
	// optionally excluding one id (for updates).
	FindConflicts(ctx context.Context, names, skus, urlKeys []string, excludeID string) ([]catalog.ConflictRow, error)

	UpdateInStockBySKU(ctx context.Context, sku string, inStock bool) (int64, error)
}
