package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies every failure a domain operation may return. There is no
// sixth kind: anything else escaping a service is a bug and surfaces as a
// 500.
type Kind string

const (
	KindValidation    Kind = "VALIDATION_ERROR"
	KindNotFound      Kind = "NOT_FOUND"
	KindInvalidState  Kind = "INVALID_STATE"
	KindAuthorization Kind = "AUTHORIZATION_ERROR"
	KindConflict      Kind = "CONFLICT"
)

// DomainError is the typed result every service operation fails with.
type DomainError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func Validation(field, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message, Field: field}
}

func NotFound(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

func InvalidState(message string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Message: message}
}

func Authorization(message string) *DomainError {
	return &DomainError{Kind: KindAuthorization, Message: message}
}

func Conflict(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindInvalidState, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond translates a service error into the transport response. Handlers
// are the only layer that calls this; services never touch HTTP.
func Respond(c *gin.Context, err error) {
	if domainErr, ok := err.(*DomainError); ok {
		c.JSON(statusFor(domainErr.Kind), domainErr)
		return
	}
	InternalError(c, "")
}

// Non-domain responders for transport-level failures.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, gin.H{"kind": "UNAUTHORIZED", "message": message})
}

func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, &DomainError{Kind: KindValidation, Message: message})
}

func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, &DomainError{Kind: KindNotFound, Message: message})
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	c.JSON(http.StatusForbidden, &DomainError{Kind: KindAuthorization, Message: message})
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, gin.H{"kind": "INTERNAL_ERROR", "message": message})
}

func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"kind": "SERVICE_UNAVAILABLE", "message": message})
}
