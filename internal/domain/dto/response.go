package dto

import "math"

// SuccessResponse is the envelope for every successful response.
type SuccessResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Payload    any    `json:"payload"`
	RequestID  string `json:"request_id,omitempty"`
}

// ErrorResponse is the envelope for every failed response.
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Errors    []FieldError `json:"errors,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

// NewSuccess builds a success envelope.
func NewSuccess(statusCode int, message string, payload any) *SuccessResponse {
	return &SuccessResponse{
		StatusCode: statusCode,
		Message:    message,
		Payload:    payload,
	}
}

// NewError builds an error envelope.
func NewError(message string, fields ...FieldError) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Message: message,
		Errors:  fields,
	}
}

// WithRequestID attaches the request id for traceability.
func (r *ErrorResponse) WithRequestID(id string) *ErrorResponse {
	r.RequestID = id
	return r
}

// Pagination describes the page window of a list result.
// Items is the total matching count, not the page size.
type Pagination struct {
	Items      int64 `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the page window. A non-positive limit bypasses
// pagination: everything is one page.
func NewPagination(items int64, page, limit int) Pagination {
	if limit <= 0 {
		return Pagination{Items: items, Page: 1, Limit: limit, TotalPages: 1}
	}
	return Pagination{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(items) / float64(limit))),
	}
}

// ListResult pairs a page of resources with its pagination window.
type ListResult[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// CreatedResult carries the id of a newly created resource.
type CreatedResult struct {
	ID string `json:"_id"`
}
