package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/model"
	"github.com/mecommerce/catalog-service/internal/variant/dto"
)

type fakeUseCase struct {
	createErr  error
	created    []model.Variant
	lastInputs []dto.CreateVariantInput

	deleteErr      error
	deleteAffected int64
}

func (uc *fakeUseCase) Create(ctx context.Context, inputs []dto.CreateVariantInput) ([]model.Variant, error) {
	uc.lastInputs = inputs
	if uc.createErr != nil {
		return nil, uc.createErr
	}
	return uc.created, nil
}

func (uc *fakeUseCase) FindByIDs(ctx context.Context, ids []string, pagination catalog.Pagination) ([]model.Variant, error) {
	return nil, nil
}

func (uc *fakeUseCase) FindBySKUs(ctx context.Context, skus []string, pagination catalog.Pagination) ([]model.Variant, error) {
	return nil, nil
}

func (uc *fakeUseCase) Search(ctx context.Context, value string, pagination catalog.Pagination, sort catalog.Sort, criteria catalog.SearchCriteria) (*dto.VariantList, error) {
	return &dto.VariantList{}, nil
}

func (uc *fakeUseCase) Update(ctx context.Context, id string, input *dto.UpdateVariantInput) (*model.Variant, error) {
	return nil, nil
}

func (uc *fakeUseCase) Delete(ctx context.Context, ids []string) (int64, error) {
	if uc.deleteErr != nil {
		return 0, uc.deleteErr
	}
	return uc.deleteAffected, nil
}

func doRequest(t *testing.T, uc *fakeUseCase, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	h := NewVariantHandler(uc, zap.NewNop())
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func validVariantBody() map[string]interface{} {
	return map[string]interface{}{
		"parentProductIds": []string{"123e4567-e89b-12d3-a456-426614174000"},
		"name":             "Variant A",
		"sku":              "variant-a-sku",
		"description":      "A variant",
		"urlKey":           "variant-a",
		"metaTitle":        "Variant A",
		"metaDescription":  "A variant",
		"isActive":         true,
		"inStock":          true,
		"isVisible":        true,
	}
}

func TestCreateVariants_Created(t *testing.T) {
	uc := &fakeUseCase{created: []model.Variant{
		{BaseModel: model.BaseModel{ID: "v1"}},
		{BaseModel: model.BaseModel{ID: "v2"}},
	}}

	body := []interface{}{validVariantBody(), validVariantBody()}
	rec := doRequest(t, uc, http.MethodPost, "/", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(uc.lastInputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(uc.lastInputs))
	}
	var out []model.Variant
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(out))
	}
}

func TestCreateVariants_RejectsEmptyBatch(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, http.MethodPost, "/", []interface{}{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateVariants_RejectsObjectBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, http.MethodPost, "/", validVariantBody())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateVariants_MissingParentIDs(t *testing.T) {
	body := validVariantBody()
	body["parentProductIds"] = []string{}

	rec := doRequest(t, &fakeUseCase{}, http.MethodPost, "/", []interface{}{body})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateVariants_ParentNotFound(t *testing.T) {
	uc := &fakeUseCase{
		createErr: catalog.NewParentsNotFound([]string{"123e4567-e89b-12d3-a456-426614174999"}),
	}

	rec := doRequest(t, uc, http.MethodPost, "/", []interface{}{validVariantBody()})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if out["message"] != "products with IDs [123e4567-e89b-12d3-a456-426614174999] not found" {
		t.Fatalf("unexpected message %q", out["message"])
	}
}

func TestDeleteVariants_NothingToDelete(t *testing.T) {
	uc := &fakeUseCase{deleteErr: catalog.NewDeleteConflict("variants")}

	rec := doRequest(t, uc, http.MethodDelete, "/", map[string]interface{}{"ids": []string{"missing"}})

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
