package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the wire format for all error responses.
// Field is set for validation failures so the client can highlight the input.
type ErrorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// AppError is a structured application error carrying the HTTP status to
// respond with. Services return these; handlers pass them to Error.
type AppError struct {
	HTTPStatus int
	Message    string
	Field      string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidation reports malformed or missing input. field names the
// offending input when known.
func NewValidation(field, msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: msg, Field: field}
}

// NewAuthError reports failed authentication. The message is deliberately
// uniform so callers cannot distinguish a missing account from a bad password.
func NewAuthError() *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: "Invalid credentials"}
}

// NewNotFound reports a missing resource. Ownership misses use this too so
// existence is not leaked to non-owners.
func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Message: msg}
}

// NewConflict reports a uniqueness violation, e.g. a duplicate email.
// The API contract maps these to 400 rather than 409.
func NewConflict(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: msg}
}

// NewUpstream reports a failed call to an external collaborator.
func NewUpstream(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadGateway, Message: msg}
}

// --- Gin response helpers ---

// OK sends a 200 response with the entity as the body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the entity as the body.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response. If err is an *AppError its status, message
// and field are used; any other error becomes a generic 500 so internal
// details are never leaked to the client.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorBody{Message: appErr.Message, Field: appErr.Field})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{Message: "Internal server error"})
}

// BadRequest sends a 400 with the given message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Message: msg})
}

// Unauthorized sends a 401 with the given message.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, ErrorBody{Message: msg})
}

// NotFound sends a 404 with the given message.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, ErrorBody{Message: msg})
}
