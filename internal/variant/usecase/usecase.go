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
	"github.com/mecommerce/catalog-service/internal/variant"
	"github.com/mecommerce/catalog-service/internal/variant/dto"
)

const indexName = "variants"

type variantUseCase struct {
	repo   variant.Repository
	cache  *cache.RedisClient
	es     *search.Client
	events *broker.Publisher
	logger *zap.Logger
}

func NewVariantUseCase(repo variant.Repository, cache *cache.RedisClient, es *search.Client, events *broker.Publisher, log *zap.Logger) variant.UseCase {
	return &variantUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		events: events,
		logger: log,
	}
}

// Create validates the whole batch before any write: one conflict check
// over the aggregated names/SKUs/URL keys and one existence check over
// the aggregated parent product IDs. The batch is then persisted in a
// single transaction.
func (uc *variantUseCase) Create(ctx context.Context, inputs []dto.CreateVariantInput) ([]model.Variant, error) {
	var parentIDs, names, skus, urlKeys []string
	for _, in := range inputs {
		if len(in.ParentProductIDs) == 0 {
			return nil, catalog.ErrNoParentProducts
		}
		parentIDs = append(parentIDs, in.ParentProductIDs...)
		names = append(names, in.Name)
		skus = append(skus, in.SKU)
		urlKeys = append(urlKeys, in.URLKey)
	}

	if err := uc.conflictCheck(ctx, names, skus, urlKeys, ""); err != nil {
		return nil, err
	}
	if err := uc.checkParentsExist(ctx, parentIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	variants := make([]model.Variant, 0, len(inputs))
	for _, in := range inputs {
		variants = append(variants, model.Variant{
			BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			CatalogFields: model.CatalogFields{
				Name:            in.Name,
				SKU:             in.SKU,
				Description:     in.Description,
				URLKey:          in.URLKey,
				MetaTitle:       in.MetaTitle,
				MetaDescription: in.MetaDescription,
				IsActive:        in.IsActive,
				InStock:         in.InStock,
				IsVisible:       in.IsVisible,
			},
			ParentProductID: in.ParentProductIDs[0],
		})
	}

	if err := uc.repo.CreateBatch(ctx, variants); err != nil {
		return nil, err
	}

	go uc.invalidateSearchCache(context.Background())
	go func() {
		for i := range variants {
			uc.syncToElastic(context.Background(), &variants[i])
			uc.publishChange(context.Background(), catalog.ActionCreated, variants[i].ID)
		}
	}()

	return variants, nil
}

func (uc *variantUseCase) FindByIDs(ctx context.Context, ids []string, pagination catalog.Pagination) ([]model.Variant, error) {
	if err := pagination.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.FindByIDs(ctx, ids, pagination.Limit, pagination.Offset())
}

func (uc *variantUseCase) FindBySKUs(ctx context.Context, skus []string, pagination catalog.Pagination) ([]model.Variant, error) {
	if err := pagination.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.FindBySKUs(ctx, skus, pagination.Limit, pagination.Offset())
}

func (uc *variantUseCase) Search(ctx context.Context, value string, pagination catalog.Pagination, sort catalog.Sort, criteria catalog.SearchCriteria) (*dto.VariantList, error) {
	if err := pagination.Validate(); err != nil {
		return nil, err
	}

	// Variants only carry the shared column set.
	criteria = criteria.Shared()

	cacheKey := uc.searchCacheKey(value, pagination, sort, criteria)
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached dto.VariantList
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	where, args := criteria.Predicates(value)
	items, total, err := uc.repo.Search(ctx, catalog.SearchQuery{
		Where:   where,
		Args:    args,
		OrderBy: catalog.OrderClause(sort, catalog.VariantSortColumns),
		Limit:   pagination.Limit,
		Offset:  pagination.Offset(),
	})
	if err != nil {
		return nil, err
	}

	result := &dto.VariantList{
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

func (uc *variantUseCase) Update(ctx context.Context, id string, input *dto.UpdateVariantInput) (*model.Variant, error) {
	if err := uc.conflictCheck(ctx, []string{input.Name}, []string{input.SKU}, []string{input.URLKey}, id); err != nil {
		return nil, err
	}

	v := &model.Variant{
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
	}

	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	updated, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, catalog.NewNotFound("variant", id)
	}

	go uc.invalidateSearchCache(context.Background())
	go uc.syncToElastic(context.Background(), updated)
	go uc.publishChange(context.Background(), catalog.ActionUpdated, id)

	return updated, nil
}

func (uc *variantUseCase) Delete(ctx context.Context, ids []string) (int64, error) {
	affected, err := uc.repo.Delete(ctx, ids)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, catalog.NewDeleteConflict("variants")
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

// conflictCheck runs the list-based uniqueness pre-check; the message
// aggregates every colliding field across the whole batch.
func (uc *variantUseCase) conflictCheck(ctx context.Context, names, skus, urlKeys []string, excludeID string) error {
	rows, err := uc.repo.FindConflicts(ctx, names, skus, urlKeys, excludeID)
	if err != nil {
		return err
	}
	return catalog.ConflictFrom("variant", rows, names, skus, urlKeys)
}

// checkParentsExist resolves the aggregated parent product IDs and
// reports the ones absent from storage.
func (uc *variantUseCase) checkParentsExist(ctx context.Context, ids []string) error {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	existing, err := uc.repo.FindParentIDs(ctx, unique)
	if err != nil {
		return err
	}
	if len(existing) == len(unique) {
		return nil
	}

	found := make(map[string]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	var missing []string
	for _, id := range unique {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return catalog.NewParentsNotFound(missing)
}

func (uc *variantUseCase) searchCacheKey(value string, pagination catalog.Pagination, sort catalog.Sort, criteria catalog.SearchCriteria) string {
	payload, _ := json.Marshal(struct {
		Value      string
		Pagination catalog.Pagination
		Sort       catalog.Sort
		Criteria   catalog.SearchCriteria
	}{value, pagination, sort, criteria})
	return fmt.Sprintf("variants:search:%x", md5.Sum(payload))
}

func (uc *variantUseCase) invalidateSearchCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	uc.cache.DeletePattern(ctx, "variants:search:*")
}

func (uc *variantUseCase) syncToElastic(ctx context.Context, v *model.Variant) {
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
				"parentProductId": { "type": "keyword" },
				"createdAt": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, indexName, mapping)

	if err := uc.es.Index(ctx, indexName, v.ID, v); err != nil {
		uc.logger.Error("failed to index variant", zap.Error(err))
	}
}

func (uc *variantUseCase) removeFromElastic(ctx context.Context, id string) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Delete(ctx, indexName, id); err != nil {
		uc.logger.Error("failed to delete variant from index", zap.Error(err))
	}
}

func (uc *variantUseCase) publishChange(ctx context.Context, action, id string) {
	if uc.events == nil {
		return
	}
	event := catalog.ChangeEvent{Entity: "variant", Action: action, ID: id, At: time.Now()}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := uc.events.Publish(ctx, []byte(id), payload); err != nil {
		uc.logger.Error("failed to publish variant event", zap.Error(err))
	}
}
