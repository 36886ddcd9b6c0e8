// Package dto defines request and response shapes for the HTTP API.
package dto

import (
	"fmt"
	"strings"

	"github.com/guttosm/commerce-service/internal/domain/model"
)

const (
	// DefaultPage is used when no page is requested.
	DefaultPage = 1
	// DefaultLimit is used when no limit is requested.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// FieldError describes a single validation failure.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError aggregates field errors from request validation.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Path, f.Message)
	}
	return strings.Join(parts, "; ")
}

// BoolParam is a tri-state boolean query parameter: "", "true", "false".
// Query strings carry booleans as text, and absence must not be
// conflated with false.
type BoolParam string

// Validate checks the raw value.
func (b BoolParam) Validate(path string) *FieldError {
	switch b {
	case "", "true", "false":
		return nil
	default:
		return &FieldError{Path: path, Message: "must be true or false"}
	}
}

// Value returns nil when the parameter is absent.
func (b BoolParam) Value() *bool {
	switch b {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

// ListQuery holds the pagination, sorting, search, and projection
// parameters shared by every list endpoint.
type ListQuery struct {
	Search    string    `form:"search"`
	Page      int       `form:"page"`
	Limit     int       `form:"limit"`
	SortBy    string    `form:"sortBy"`
	SortOrder string    `form:"sortOrder"`
	Fields    string    `form:"fields"`
	IsActive  BoolParam `form:"is_active"`
}

// Normalize applies defaults and caps. defaultSort names the field used
// when the caller does not sort explicitly.
func (q *ListQuery) Normalize(defaultSort string) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.SortBy == "" {
		q.SortBy = defaultSort
	}
	if q.SortOrder == "" {
		q.SortOrder = "asc"
	}
}

// Validate checks sort order and projection fields against the
// resource's known field names.
func (q *ListQuery) Validate(fields model.FieldSet) error {
	var errs []FieldError
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		errs = append(errs, FieldError{Path: "sortOrder", Message: "must be either asc or desc"})
	}
	if err := q.IsActive.Validate("is_active"); err != nil {
		errs = append(errs, *err)
	}
	errs = append(errs, validateFields(q.Fields, fields)...)
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Sort returns the MongoDB sort specification.
func (q *ListQuery) Sort() map[string]int {
	order := 1
	if q.SortOrder == "desc" {
		order = -1
	}
	return map[string]int{q.SortBy: order}
}

// FieldList splits the comma-separated projection into names.
func (q *ListQuery) FieldList() []string {
	return SplitFields(q.Fields)
}

// GetQuery holds the parameters of a get-by-id endpoint.
type GetQuery struct {
	Fields string `form:"fields"`
}

// Validate checks the projection against the resource's field set.
func (q *GetQuery) Validate(fields model.FieldSet) error {
	if errs := validateFields(q.Fields, fields); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// FieldList splits the comma-separated projection into names.
func (q *GetQuery) FieldList() []string {
	return SplitFields(q.Fields)
}

// SplitFields parses a comma-separated projection parameter.
func SplitFields(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := strings.TrimSpace(p); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func validateFields(raw string, known model.FieldSet) []FieldError {
	var errs []FieldError
	for _, f := range SplitFields(raw) {
		if f == "_id" {
			continue
		}
		if !known.Contains(f) {
			errs = append(errs, FieldError{
				Path:    "fields",
				Message: fmt.Sprintf("unknown field %q", f),
			})
		}
	}
	return errs
}

// ChangeStatusRequest toggles a resource's active flag.
type ChangeStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
