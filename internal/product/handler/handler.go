package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/pkg/httputil"
	"github.com/mecommerce/catalog-service/internal/product"
	"github.com/mecommerce/catalog-service/internal/product/dto"
)

type ProductHandler struct {
	uc       product.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewProductHandler(uc product.UseCase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		uc:       uc,
		validate: httputil.NewValidator(),
		logger:   log,
	}
}

func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.Search)
	r.Get("/ids", h.FindByIDs)
	r.Get("/skus", h.FindBySKUs)
	r.Put("/{id}", h.Update)
	r.Delete("/", h.Delete)
	return r
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteValidationError(w, []string{"invalid request body"})
		return
	}
	if msgs := httputil.ValidationMessages(h.validate.Struct(&input)); len(msgs) > 0 {
		httputil.WriteValidationError(w, msgs)
		return
	}

	p, err := h.uc.Create(r.Context(), &input)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
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

func (h *ProductHandler) FindByIDs(w http.ResponseWriter, r *http.Request) {
	pagination, err := httputil.ParsePagination(r)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}

	products, err := h.uc.FindByIDs(r.Context(), httputil.SplitParam(r, "ids"), pagination)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) FindBySKUs(w http.ResponseWriter, r *http.Request) {
	pagination, err := httputil.ParsePagination(r)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}

	products, err := h.uc.FindBySKUs(r.Context(), httputil.SplitParam(r, "skus"), pagination)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input dto.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteValidationError(w, []string{"invalid request body"})
		return
	}
	if msgs := httputil.ValidationMessages(h.validate.Struct(&input)); len(msgs) > 0 {
		httputil.WriteValidationError(w, msgs)
		return
	}

	p, err := h.uc.Update(r.Context(), id, &input)
	if err != nil {
		httputil.RespondError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
