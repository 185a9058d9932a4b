package errors

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Envelope statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"

	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Envelope is the body of every API response.
type Envelope struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Code      string      `json:"code,omitempty"`
	Technical string      `json:"technical,omitempty"`
}

var debug atomic.Bool

// SetDebug controls whether raw error text is returned in the technical field.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

func Debug() bool {
	return debug.Load()
}

// Success sends a 200 response carrying data.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 response carrying the new resource.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// RespondWithError sends an error envelope. cause is only exposed in debug mode.
func RespondWithError(c *gin.Context, statusCode int, code, message string, cause error) {
	env := Envelope{
		Status:  StatusError,
		Message: message,
		Code:    code,
	}
	if cause != nil {
		_ = c.Error(cause)
		if Debug() {
			env.Technical = cause.Error()
		}
	}
	c.JSON(statusCode, env)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, ErrCodeUnauthorized, message, nil)
}

// InvalidCredentials sends a 401 response for a failed password check
func InvalidCredentials(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid credentials"
	}
	RespondWithError(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, message, nil)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, ErrCodeNotFound, message, nil)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string, cause error) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, ErrCodeInvalidInput, message, cause)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, ErrCodeConflict, message, nil)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string, cause error) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, ErrCodeInternalError, message, cause)
}
