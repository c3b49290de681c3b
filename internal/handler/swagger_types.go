package handler

import (
	"kycportal/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ReviewRequest represents a reviewer decision.
type ReviewRequest struct {
	Decision domain.DocumentStatus `json:"decision" binding:"required" example:"approved" enums:"approved,rejected"`
	Notes    string                `json:"notes" example:"Document is legible and matches the applicant"`
}

// UploadAccepted is returned after a successful upload.
type UploadAccepted struct {
	Document domain.Document   `json:"document"`
	Summary  domain.KYCSummary `json:"summary"`
}

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
