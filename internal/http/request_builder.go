package http

import (
	"github.com/gin-gonic/gin"
)

// BindJSON unmarshals and binding-validates the request body.
func BindJSON[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// BindQuery binds the query string parameters.
func BindQuery[T any](c *gin.Context) (*T, error) {
	var q T
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Validator is implemented by requests that validate themselves beyond
// binding tags.
type Validator interface {
	Validate() error
}

// BindJSONAndValidate binds the body and runs its Validate method when
// present.
func BindJSONAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BindJSON[T](c)
	if err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}
