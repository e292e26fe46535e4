package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mecommerce/catalog-service/internal/catalog"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    interface{} `json:"message"`
	Error      string      `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteValidationError returns the 400 shape with per-field messages.
func WriteValidationError(w http.ResponseWriter, messages []string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    messages,
		Error:      "Bad Request",
	})
}

// NewValidator builds a validator that reports fields by their json
// names, so validation messages match the request payload.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationMessages flattens validator errors into per-field messages.
func ValidationMessages(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" should not be empty")
		case "uuid":
			msgs = append(msgs, field+" must be a UUID")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "min":
			msgs = append(msgs, field+" should not be empty")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return msgs
}

// RespondError maps domain errors to status codes. Anything outside the
// taxonomy is an opaque internal error.
func RespondError(w http.ResponseWriter, log *zap.Logger, err error) {
	if errors.Is(err, catalog.ErrInvalidPagination) ||
		errors.Is(err, catalog.ErrPageNotInteger) ||
		errors.Is(err, catalog.ErrLimitNotInteger) ||
		errors.Is(err, catalog.ErrNoParentProducts) {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
			Error:      "Bad Request",
		})
		return
	}

	var conflict *catalog.ConflictError
	if errors.As(err, &conflict) {
		WriteJSON(w, http.StatusConflict, ErrorResponse{
			StatusCode: http.StatusConflict,
			Message:    conflict.Message,
			Error:      "Conflict",
		})
		return
	}

	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		WriteJSON(w, http.StatusNotFound, ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    notFound.Message,
			Error:      "Not Found",
		})
		return
	}

	log.Error("request failed", zap.Error(err))
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal Server Error",
		Error:      "Internal Server Error",
	})
}

// ParsePagination reads page/limit query params. Missing params default
// to page 1 with 10 items; bounds are checked by the usecases.
func ParsePagination(r *http.Request) (catalog.Pagination, error) {
	p := catalog.Pagination{Page: 1, Limit: 10}

	q := r.URL.Query()
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return p, catalog.ErrPageNotInteger
		}
		p.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return p, catalog.ErrLimitNotInteger
		}
		p.Limit = limit
	}
	return p, nil
}

// ParseCriteria reads the per-field search flags from query params.
func ParseCriteria(r *http.Request) catalog.SearchCriteria {
	q := r.URL.Query()
	flag := func(name string) bool {
		b, err := strconv.ParseBool(q.Get(name))
		return err == nil && b
	}
	return catalog.SearchCriteria{
		Name:            flag("name"),
		SKU:             flag("sku"),
		Description:     flag("description"),
		URLKey:          flag("urlKey"),
		MetaTitle:       flag("metaTitle"),
		MetaDescription: flag("metaDescription"),
		CreatedByUserID: flag("createdByUserId"),
		IsActive:        flag("isActive"),
		InStock:         flag("inStock"),
		IsVisible:       flag("isVisible"),
		Type:            flag("type"),
		NewFromDate:     flag("newFromDate"),
		NewToDate:       flag("newToDate"),
	}
}

// SplitParam reads a comma-separated query param into a list, dropping
// empty segments.
func SplitParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
