package response

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the unified API error format.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AppError represents a structured application error with HTTP status,
// a short error label and human-readable details.
type AppError struct {
	HTTPStatus int    // HTTP status code (e.g. 400, 404, 500)
	Label      string // Short error label (e.g. "not found")
	Details    string // Human-readable explanation
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Label + ": " + e.Details
	}
	return e.Label
}

// Pre-defined error constructors

func NewBadRequest(details string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Label: "invalid request", Details: details}
}

func NewUnauthorized(details string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Label: "unauthorized", Details: details}
}

func NewForbidden(details string) *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Label: "forbidden", Details: details}
}

func NewNotFound(details string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Label: "not found", Details: details}
}

func NewConflict(details string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Label: "conflict", Details: details}
}

func NewServerError(details string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Label: "internal error", Details: details}
}

// NewValidation builds a 400 error whose details carry per-field messages,
// sorted by field name so the output is stable.
func NewValidation(fields map[string]string) *AppError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return &AppError{
		HTTPStatus: http.StatusBadRequest,
		Label:      "validation failed",
		Details:    strings.Join(parts, "; "),
	}
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error sends an error response. If err is an *AppError, its status and label
// are used; any other error is reported as a generic 500 without leaking the
// underlying failure to the caller.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorBody{Error: appErr.Label, Details: appErr.Details})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal error", Details: "an unexpected error occurred"})
}

// Convenience error response functions

func BadRequest(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: "invalid request", Details: details})
}

func Unauthorized(c *gin.Context, details string) {
	c.JSON(http.StatusUnauthorized, ErrorBody{Error: "unauthorized", Details: details})
}

func Forbidden(c *gin.Context, details string) {
	c.JSON(http.StatusForbidden, ErrorBody{Error: "forbidden", Details: details})
}

func NotFound(c *gin.Context, details string) {
	c.JSON(http.StatusNotFound, ErrorBody{Error: "not found", Details: details})
}

func ServerError(c *gin.Context, details string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal error", Details: details})
}
