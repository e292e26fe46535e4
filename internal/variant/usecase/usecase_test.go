package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/model"
	"github.com/mecommerce/catalog-service/internal/variant/dto"
)

const (
	parentA = "123e4567-e89b-12d3-a456-426614174000"
	parentB = "123e4567-e89b-12d3-a456-426614174001"
)

type fakeRepo struct {
	conflicts     []catalog.ConflictRow
	lastNames     []string
	lastSKUs      []string
	lastExcludeID string

	existingParents []string
	parentCalls     int
	lastParentIDs   []string

	batch []model.Variant

	byID map[string]*model.Variant

	searchItems []model.Variant
	searchTotal int
	lastQuery   catalog.SearchQuery

	updated *model.Variant

	deleteAffected int64
}

func (r *fakeRepo) CreateBatch(ctx context.Context, variants []model.Variant) error {
	r.batch = variants
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*model.Variant, error) {
	return r.byID[id], nil
}

func (r *fakeRepo) FindByIDs(ctx context.Context, ids []string, limit, offset int) ([]model.Variant, error) {
	return r.searchItems, nil
}

func (r *fakeRepo) FindBySKUs(ctx context.Context, skus []string, limit, offset int) ([]model.Variant, error) {
	return r.searchItems, nil
}

func (r *fakeRepo) Search(ctx context.Context, q catalog.SearchQuery) ([]model.Variant, int, error) {
	r.lastQuery = q
	return r.searchItems, r.searchTotal, nil
}

func (r *fakeRepo) Update(ctx context.Context, v *model.Variant) error {
	r.updated = v
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, ids []string) (int64, error) {
	return r.deleteAffected, nil
}

func (r *fakeRepo) FindConflicts(ctx context.Context, names, skus, urlKeys []string, excludeID string) ([]catalog.ConflictRow, error) {
	r.lastNames = names
	r.lastSKUs = skus
	r.lastExcludeID = excludeID
	return r.conflicts, nil
}

func (r *fakeRepo) FindParentIDs(ctx context.Context, ids []string) ([]string, error) {
	r.parentCalls++
	r.lastParentIDs = ids
	return r.existingParents, nil
}

func (r *fakeRepo) UpdateInStockBySKU(ctx context.Context, sku string, inStock bool) (int64, error) {
	return 0, nil
}

func newUseCase(repo *fakeRepo) *variantUseCase {
	return NewVariantUseCase(repo, nil, nil, nil, zap.NewNop()).(*variantUseCase)
}

func variantInput(name, sku string, parents ...string) dto.CreateVariantInput {
	return dto.CreateVariantInput{
		ParentProductIDs: parents,
		Name:             name,
		SKU:              sku,
		Description:      "d",
		URLKey:           sku,
		MetaTitle:        name,
		MetaDescription:  "m",
		IsActive:         true,
		InStock:          true,
		IsVisible:        true,
	}
}

func TestCreateVariantBatch(t *testing.T) {
	repo := &fakeRepo{existingParents: []string{parentA, parentB}}
	uc := newUseCase(repo)

	created, err := uc.Create(context.Background(), []dto.CreateVariantInput{
		variantInput("Variant A", "variant-a-sku", parentA, parentB),
		variantInput("Variant B", "variant-b-sku", parentB),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Len(t, repo.batch, 2)

	require.NotEmpty(t, created[0].ID)
	require.NotEqual(t, created[0].ID, created[1].ID)
	require.Equal(t, parentA, created[0].ParentProductID)
	require.Equal(t, parentB, created[1].ParentProductID)

	require.Equal(t, []string{"Variant A", "Variant B"}, repo.lastNames)
	require.Equal(t, []string{"variant-a-sku", "variant-b-sku"}, repo.lastSKUs)
	require.Equal(t, []string{parentA, parentB}, repo.lastParentIDs)
}

func TestCreateVariantMissingParent(t *testing.T) {
	repo := &fakeRepo{existingParents: []string{parentA}}
	uc := newUseCase(repo)

	_, err := uc.Create(context.Background(), []dto.CreateVariantInput{
		variantInput("Variant A", "variant-a-sku", parentA, parentB),
	})

	var notFound *catalog.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "products with IDs ["+parentB+"] not found", notFound.Message)
	require.Nil(t, repo.batch)
}

func TestCreateVariantBatchConflict(t *testing.T) {
	repo := &fakeRepo{
		existingParents: []string{parentA},
		conflicts: []catalog.ConflictRow{
			{Name: "x", SKU: "variant-b-sku", URLKey: "y"},
		},
	}
	uc := newUseCase(repo)

	_, err := uc.Create(context.Background(), []dto.CreateVariantInput{
		variantInput("Variant A", "variant-a-sku", parentA),
		variantInput("Variant B", "variant-b-sku", parentA),
	})

	var conflict *catalog.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "variant with the same SKU: variant-b-sku already exists", conflict.Message)
	require.Nil(t, repo.batch)
	require.Zero(t, repo.parentCalls)
}

func TestCreateVariantRejectsEmptyParentList(t *testing.T) {
	repo := &fakeRepo{existingParents: []string{parentA}}
	uc := newUseCase(repo)

	_, err := uc.Create(context.Background(), []dto.CreateVariantInput{
		variantInput("Variant A", "variant-a-sku", parentA),
		variantInput("Variant B", "variant-b-sku"),
	})

	require.ErrorIs(t, err, catalog.ErrNoParentProducts)
	require.Nil(t, repo.batch)
}

func TestCreateVariantDeduplicatesParentIDs(t *testing.T) {
	repo := &fakeRepo{existingParents: []string{parentA}}
	uc := newUseCase(repo)

	_, err := uc.Create(context.Background(), []dto.CreateVariantInput{
		variantInput("Variant A", "variant-a-sku", parentA, parentA),
		variantInput("Variant B", "variant-b-sku", parentA),
	})
	require.NoError(t, err)
	require.Equal(t, []string{parentA}, repo.lastParentIDs)
}

func TestVariantSearchDropsProductOnlyCriteria(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUseCase(repo)

	_, err := uc.Search(context.Background(), "x",
		catalog.Pagination{Page: 1, Limit: 10},
		catalog.Sort{},
		catalog.SearchCriteria{Name: true, Type: true, CreatedByUserID: true})
	require.NoError(t, err)

	require.Contains(t, repo.lastQuery.Where, "name ILIKE :pattern")
	require.NotContains(t, repo.lastQuery.Where, "type")
	require.NotContains(t, repo.lastQuery.Where, "created_by_user_id")
}

func TestUpdateVariantExcludesSelf(t *testing.T) {
	id := "123e4567-e89b-12d3-a456-426614174222"
	repo := &fakeRepo{
		byID: map[string]*model.Variant{
			id: {BaseModel: model.BaseModel{ID: id}},
		},
	}
	uc := newUseCase(repo)

	updated, err := uc.Update(context.Background(), id, &dto.UpdateVariantInput{
		Name: "n", SKU: "s", Description: "d", URLKey: "u",
		MetaTitle: "t", MetaDescription: "m",
	})
	require.NoError(t, err)
	require.Equal(t, id, updated.ID)
	require.Equal(t, id, repo.lastExcludeID)
}

func TestUpdateMissingVariantIsNotFound(t *testing.T) {
	repo := &fakeRepo{byID: map[string]*model.Variant{}}
	uc := newUseCase(repo)

	_, err := uc.Update(context.Background(), "missing", &dto.UpdateVariantInput{
		Name: "n", SKU: "s", Description: "d", URLKey: "u",
		MetaTitle: "t", MetaDescription: "m",
	})

	var notFound *catalog.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteNothingIsConflict(t *testing.T) {
	uc := newUseCase(&fakeRepo{deleteAffected: 0})

	_, err := uc.Delete(context.Background(), []string{"missing"})

	var conflict *catalog.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "No variants found to delete", conflict.Message)
}
