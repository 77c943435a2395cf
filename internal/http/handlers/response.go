// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response envelopes shared by every endpoint. All
// responses carry `success` and `message`; successful ones put the payload
// under `data`, failures add a stable `code`, the correlation id and
// optional `details`.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "success": false,
//	  "message": "plant not found",
//	  "code": "not_found",
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-irrigation-backend/internal/http/middleware"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

// Envelope is the success body.
type Envelope struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"watering session created"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the failure body returned by all endpoints.
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"plant not found"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Details   any    `json:"details,omitempty"`
}

// fail aborts the request with a structured error. 5xx responses are logged
// with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	failWith(c, status, code, msg, nil)
}

func failWith(c *gin.Context, status int, code, msg string, details any) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success:   false,
		Message:   msg,
		Code:      code,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Details:   details,
	})
}

// Fail is the exported variant of fail() for the router fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success envelope.
func ok(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Envelope{Success: true, Message: msg, Data: data})
}

// failFromError maps service errors to status, code and message. Unknown
// errors become 500 with their text kept out of the response body.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		fail(c, http.StatusBadRequest, ErrCodeInvalidID, err.Error())
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, services.ErrPlantNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrHistoryNotFound),
		errors.Is(err, services.ErrPageNotFound),
		errors.Is(err, services.ErrNoPlants):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrActuatorFailure):
		_ = c.Error(err)
		fail(c, http.StatusBadGateway, ErrCodeActuator, "actuator did not execute the command")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
