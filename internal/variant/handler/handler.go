package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/pkg/httputil"
	"github.com/mecommerce/catalog-service/internal/variant"
	"github.com/mecommerce/catalog-service/internal/variant/dto"
)

type VariantHandler struct {
	uc       variant.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewVariantHandler(uc variant.UseCase, log *zap.Logger) *VariantHandler {
	return &VariantHandler{
		uc:       uc,
		validate: httputil.NewValidator(),
		logger:   log,
	}
}

func (h *VariantHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.Search)
	r.Get("/ids", h.FindByIDs)
	r.Get("/skus", h.FindBySKUs)
	r.Put("/{id}", h.Update)
	r.Delete("/", h.Delete)
	return r
}

// Create accepts a batch of variant creation requests.
func (h *VariantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var inputs []dto.CreateVariantInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil || len(inputs) == 0 {
		httputil.WriteValidationError(w, []string{"request body must be a non-empty array"})
		return
	}
	for _, in := range inputs {
		if msgs := httputil.ValidationMessages(h.validate.Struct(&in)); len(msgs) > 0 {
			httputil.WriteValidationError(w, msgs)
			return
		}
	}

	variants, err := h.uc.Create(r.Context(), inputs)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, variants)
}

func (h *VariantHandler) Search(w http.ResponseWriter, r *http.Request) {
	pagination, err := httputil.ParsePagination(r)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}

	q := r.URL.Query()
	sort := catalog.Sort{Field: q.Get("sortField"), Order: q.Get("sortOrder")}

	result, err := h.uc.Search(r.Context(), q.Get("value"), pagination, sort, httputil.ParseCriteria(r))
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *VariantHandler) FindByIDs(w http.ResponseWriter, r *http.Request) {
	pagination, err := httputil.ParsePagination(r)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}

	variants, err := h.uc.FindByIDs(r.Context(), httputil.SplitParam(r, "ids"), pagination)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, variants)
}

func (h *VariantHandler) FindBySKUs(w http.ResponseWriter, r *http.Request) {
	pagination, err := httputil.ParsePagination(r)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}

	variants, err := h.uc.FindBySKUs(r.Context(), httputil.SplitParam(r, "skus"), pagination)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, variants)
}

func (h *VariantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input dto.UpdateVariantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteValidationError(w, []string{"invalid request body"})
		return
	}
	if msgs := httputil.ValidationMessages(h.validate.Struct(&input)); len(msgs) > 0 {
		httputil.WriteValidationError(w, msgs)
		return
	}

	v, err := h.uc.Update(r.Context(), id, &input)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *VariantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		httputil.WriteValidationError(w, []string{"ids should not be empty"})
		return
	}

	deleted, err := h.uc.Delete(r.Context(), req.IDs)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
