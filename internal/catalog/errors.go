package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ErrInvalidPagination is returned before any query runs when page or
// limit is below 1.
var ErrInvalidPagination = errors.New("pagination parameters must be greater than 0")

// Returned when the page/limit query params fail to parse at all.
var (
	ErrPageNotInteger  = errors.New("page must be an integer")
	ErrLimitNotInteger = errors.New("limit must be an integer")
)

// ErrNoParentProducts is returned when a variant carries no parent
// product references at all.
var ErrNoParentProducts = errors.New("parentProductIds should not be empty")

// FieldConflict names one uniqueness field together with the offending
// values found in storage.
type FieldConflict struct {
	Field  string
	Values []string
}

type ConflictError struct {
	Message string
	Fields  []FieldConflict
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewDeleteConflict reports a delete call that affected zero rows.
// entity is the plural display name ("products" or "variants").
func NewDeleteConflict(entity string) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf("No %s found to delete", entity)}
}

// NewFieldConflict builds the message enumerating exactly which
// uniqueness fields collided, e.g.
// "product with the same name: Foo, SKU: foo-1 already exists".
func NewFieldConflict(entity string, fields []FieldConflict) *ConflictError {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, strings.Join(f.Values, ", ")))
	}
	return &ConflictError{
		Message: fmt.Sprintf("%s with the same %s already exists", entity, strings.Join(parts, ", ")),
		Fields:  fields,
	}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewParentsNotFound reports variant parent references that do not
// resolve to existing products.
func NewParentsNotFound(ids []string) *NotFoundError {
	return &NotFoundError{
		Message: fmt.Sprintf("products with IDs [%s] not found", strings.Join(ids, ", ")),
	}
}

const uniqueViolation = "23505"

// TranslateUnique maps a commit-time unique constraint violation to the
// conflict taxonomy. The deferred constraint is the source of truth for
// uniqueness; the application-level conflict check only exists to
// produce a friendlier, field-enumerating message first.
func TranslateUnique(entity string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &ConflictError{
			Message: fmt.Sprintf("%s with this SKU, name or url key already exists", entity),
		}
	}
	return err
}
