package product

import (
	"context"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/model"
	"github.com/mecommerce/catalog-service/internal/product/dto"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string, pagination catalog.Pagination) ([]model.Product, error)
	FindBySKUs(ctx context.Context, skus []string, pagination catalog.Pagination) ([]model.Product, error)
	Search(ctx context.Context, value string, pagination catalog.Pagination, sort catalog.Sort, criteria catalog.SearchCriteria) (*dto.ProductList, error)
	Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}
