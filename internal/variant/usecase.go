package variant

import (
	"context"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/model"
	"github.com/mecommerce/catalog-service/internal/variant/dto"
)

type UseCase interface {
	Create(ctx context.Context, inputs []dto.CreateVariantInput) ([]model.Variant, error)
	FindByIDs(ctx context.Context, ids []string, pagination catalog.Pagination) ([]model.Variant, error)
	FindBySKUs(ctx context.Context, skus []string, pagination catalog.Pagination) ([]model.Variant, error)
	Search(ctx context.Context, value string, pagination catalog.Pagination, sort catalog.Sort, criteria catalog.SearchCriteria) (*dto.VariantList, error)
	Update(ctx context.Context, id string, input *dto.UpdateVariantInput) (*model.Variant, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}
