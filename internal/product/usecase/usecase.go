package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/model"
	"github.com/mecommerce/catalog-service/internal/pkg/broker"
	"github.com/mecommerce/catalog-service/internal/pkg/cache"
	"github.com/mecommerce/catalog-service/internal/pkg/search"
	"github.com/mecommerce/catalog-service/internal/product"
	"github.com/mecommerce/catalog-service/internal/product/dto"
)

const indexName = "products"

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	events *broker.Publisher
	logger *zap.Logger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, events *broker.Publisher, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		events: events,
		logger: log,
	}
}

func (uc *productUseCase) Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := uc.conflictCheck(ctx, input.Name, input.SKU, input.URLKey, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	productType := input.Type
	if productType == "" {
		productType = model.TypeSimple
	}

	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CatalogFields: model.CatalogFields{
			Name:            input.Name,
			SKU:             input.SKU,
			Description:     input.Description,
			URLKey:          input.URLKey,
			MetaTitle:       input.MetaTitle,
			MetaDescription: input.MetaDescription,
			IsActive:        input.IsActive,
			InStock:         input.InStock,
			IsVisible:       input.IsVisible,
		},
		Type:            productType,
		CreatedByUserID: input.CreatedByUserID,
		NewFromDate:     input.NewFromDate,
		NewToDate:       input.NewToDate,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateSearchCache(context.Background())
	go uc.syncToElastic(context.Background(), p)
	go uc.publishChange(context.Background(), catalog.ActionCreated, p.ID)

	return p, nil
}

func (uc *productUseCase) FindByIDs(ctx context.Context, ids []string, pagination catalog.Pagination) ([]model.Product, error) {
	if err := pagination.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.FindByIDs(ctx, ids, pagination.Limit, pagination.Offset())
}

func (uc *productUseCase) FindBySKUs(ctx context.Context, skus []string, pagination catalog.Pagination) ([]model.Product, error) {
	if err := pagination.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.FindBySKUs(ctx, skus, pagination.Limit, pagination.Offset())
}

func (uc *productUseCase) Search(ctx context.Context, value string, pagination catalog.Pagination, sort catalog.Sort, criteria catalog.SearchCriteria) (*dto.ProductList, error) {
	if err := pagination.Validate(); err != nil {
		return nil, err
	}

	cacheKey := uc.searchCacheKey(value, pagination, sort, criteria)
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached dto.ProductList
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	where, args := criteria.Predicates(value)
	items, total, err := uc.repo.Search(ctx, catalog.SearchQuery{
		Where:   where,
		Args:    args,
		OrderBy: catalog.OrderClause(sort, catalog.ProductSortColumns),
		Limit:   pagination.Limit,
		Offset:  pagination.Offset(),
	})
	if err != nil {
		return nil, err
	}

	result := &dto.ProductList{
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: catalog.TotalPages(total, pagination.Limit),
		Items:      items,
	}

	if uc.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return result, nil
}

func (uc *productUseCase) Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := uc.conflictCheck(ctx, input.Name, input.SKU, input.URLKey, id); err != nil {
		return nil, err
	}

	productType := input.Type
	if productType == "" {
		productType = model.TypeSimple
	}

	p := &model.Product{
		BaseModel: model.BaseModel{ID: id, UpdatedAt: time.Now()},
		CatalogFields: model.CatalogFields{
			Name:            input.Name,
			SKU:             input.SKU,
			Description:     input.Description,
			URLKey:          input.URLKey,
			MetaTitle:       input.MetaTitle,
			MetaDescription: input.MetaDescription,
			IsActive:        input.IsActive,
			InStock:         input.InStock,
			IsVisible:       input.IsVisible,
		},
		Type:            productType,
		CreatedByUserID: input.CreatedByUserID,
		NewFromDate:     input.NewFromDate,
		NewToDate:       input.NewToDate,
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	updated, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, catalog.NewNotFound("product", id)
	}

	go uc.invalidateSearchCache(context.Background())
	go uc.syncToElastic(context.Background(), updated)
	go uc.publishChange(context.Background(), catalog.ActionUpdated, id)

	return updated, nil
}

func (uc *productUseCase) Delete(ctx context.Context, ids []string) (int64, error) {
	affected, err := uc.repo.Delete(ctx, ids)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, catalog.NewDeleteConflict("products")
	}

	go uc.invalidateSearchCache(context.Background())
	go func() {
		for _, id := range ids {
			uc.removeFromElastic(context.Background(), id)
			uc.publishChange(context.Background(), catalog.ActionDeleted, id)
		}
	}()

	return affected, nil
}

// conflictCheck queries rows sharing the name, SKU or URL key and fails
// with a ConflictError enumerating exactly which fields collided.
// excludeID skips the row being updated so a product can keep its own
// values.
func (uc *productUseCase) conflictCheck(ctx context.Context, name, sku, urlKey, excludeID string) error {
	rows, err := uc.repo.FindConflicts(ctx, []string{name}, []string{sku}, []string{urlKey}, excludeID)
	if err != nil {
		return err
	}
	return catalog.ConflictFrom("product", rows, []string{name}, []string{sku}, []string{urlKey})
}

func (uc *productUseCase) searchCacheKey(value string, pagination catalog.Pagination, sort catalog.Sort, criteria catalog.SearchCriteria) string {
	payload, _ := json.Marshal(struct {
		Value      string
		Pagination catalog.Pagination
		Sort       catalog.Sort
		Criteria   catalog.SearchCriteria
	}{value, pagination, sort, criteria})
	return fmt.Sprintf("products:search:%x", md5.Sum(payload))
}

func (uc *productUseCase) invalidateSearchCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	uc.cache.DeletePattern(ctx, "products:search:*")
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"sku": { "type": "keyword" },
				"urlKey": { "type": "keyword" },
				"description": { "type": "text" },
				"type": { "type": "keyword" },
				"createdByUserId": { "type": "keyword" },
				"createdAt": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, indexName, mapping)

	if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) removeFromElastic(ctx context.Context, id string) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Delete(ctx, indexName, id); err != nil {
		uc.logger.Error("failed to delete product from index", zap.Error(err))
	}
}

func (uc *productUseCase) publishChange(ctx context.Context, action, id string) {
	if uc.events == nil {
		return
	}
	event := catalog.ChangeEvent{Entity: "product", Action: action, ID: id, At: time.Now()}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := uc.events.Publish(ctx, []byte(id), payload); err != nil {
		uc.logger.Error("failed to publish product event", zap.Error(err))
	}
}
