package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"kycportal/internal/domain"
	"kycportal/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrUnknownDocumentType):
		return http.StatusBadRequest, "UNKNOWN_DOCUMENT_TYPE", "document type is not part of the requirement catalog"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "file format is not accepted for this document type"
	case errors.Is(err, domain.ErrIncompleteSubmission):
		return http.StatusUnprocessableEntity, "INCOMPLETE_SUBMISSION", "documents cannot be submitted for review yet"
	case errors.Is(err, domain.ErrSubmissionLocked):
		return http.StatusConflict, "SUBMISSION_LOCKED", "documents cannot change while under review or approved"
	case errors.Is(err, domain.ErrInvalidDecision):
		return http.StatusBadRequest, "INVALID_DECISION", "decision must be approved or rejected"
	case errors.Is(err, domain.ErrDocumentNotUnderReview):
		return http.StatusConflict, "DOCUMENT_NOT_UNDER_REVIEW", "document is not under review"
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "REMOTE_UNAVAILABLE", "document storage is unavailable; please retry"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, "REQUEST_CANCELLED", "request was cancelled"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// errorDetails returns structured data clients can act on, if err has any.
func errorDetails(err error) interface{} {
	var incomplete *domain.IncompleteSubmissionError
	if errors.As(err, &incomplete) {
		return gin.H{"missing_types": incomplete.Missing, "status": incomplete.Status}
	}
	if errors.Is(err, domain.ErrUnknownDocumentType) ||
		errors.Is(err, domain.ErrFileTooLarge) ||
		errors.Is(err, domain.ErrUnsupportedFormat) {
		return gin.H{"reason": err.Error()}
	}
	return nil
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.WithField("request_id", c.GetString(middleware.ContextKeyRequestID)).
			Errorf("internal error: %v", err)
	}
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg, Details: errorDetails(err)},
	})
}
