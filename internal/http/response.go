package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/middleware"
	"github.com/guttosm/commerce-service/internal/service"
)

// ResponseBuilder writes the API envelopes for a request.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends a success envelope with the given status and payload.
func (b *ResponseBuilder) Success(statusCode int, message string, payload any) {
	resp := dto.NewSuccess(statusCode, message, payload)
	resp.RequestID = middleware.GetRequestID(b.c)
	b.c.JSON(statusCode, resp)
}

// OK sends a 200 envelope.
func (b *ResponseBuilder) OK(message string, payload any) {
	b.Success(http.StatusOK, message, payload)
}

// Created sends a 201 envelope.
func (b *ResponseBuilder) Created(message string, payload any) {
	b.Success(http.StatusCreated, message, payload)
}

// Error sends an error envelope and aborts the request.
func (b *ResponseBuilder) Error(statusCode int, message string, fields ...dto.FieldError) {
	resp := dto.NewError(message, fields...).
		WithRequestID(middleware.GetRequestID(b.c))
	b.c.AbortWithStatusJSON(statusCode, resp)
}

// BadRequest sends a 400 envelope for a malformed request body.
func (b *ResponseBuilder) BadRequest(err error) {
	b.Error(http.StatusBadRequest, err.Error())
}

// FromError maps a service error to its HTTP status and envelope.
func (b *ResponseBuilder) FromError(err error) {
	var vErr *dto.ValidationError
	if errors.As(err, &vErr) {
		b.Error(http.StatusBadRequest, "validation failed", vErr.Fields...)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrBadRequest):
		b.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		b.Error(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		b.Error(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		b.Error(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		b.Error(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		b.Error(http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(b.c)).
			Str("path", b.c.Request.URL.Path).
			Msg("Unhandled service error")
		b.Error(http.StatusInternalServerError, "internal server error")
	}
}
