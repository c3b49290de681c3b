package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"kycportal/internal/domain"
	"kycportal/internal/middleware"
	"kycportal/internal/service"
)

// KYCHandler handles the end-user KYC endpoints.
type KYCHandler struct {
	kycService     service.KYCService
	maxUploadBytes int64
}

// NewKYCHandler creates a new KYCHandler. maxUploadBytes bounds the whole
// multipart request body.
func NewKYCHandler(kycService service.KYCService, maxUploadBytes int64) *KYCHandler {
	return &KYCHandler{kycService: kycService, maxUploadBytes: maxUploadBytes}
}

// Requirements handles GET /api/v1/kyc/requirements
// @Summary List document requirements
// @Description Required documents first, then optional ones, in catalog order
// @Tags kyc
// @Produce json
// @Success 200 {object} Response{data=[]domain.Requirement} "Requirement catalog"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /kyc/requirements [get]
func (h *KYCHandler) Requirements(c *gin.Context) {
	RespondOK(c, h.kycService.Requirements(c.Request.Context()))
}

// Summary handles GET /api/v1/kyc/summary
// @Summary Get KYC summary
// @Description Aggregate status, progress and missing document types for the caller
// @Tags kyc
// @Produce json
// @Success 200 {object} Response{data=domain.KYCSummary} "Current summary"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 502 {object} ErrorResponseBody "Document storage unavailable"
// @Security BearerAuth
// @Router /kyc/summary [get]
func (h *KYCHandler) Summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	sum, err := h.kycService.Summary(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sum)
}

// ListDocuments handles GET /api/v1/kyc/documents
// @Summary List uploaded documents
// @Tags kyc
// @Produce json
// @Success 200 {object} Response{data=[]domain.Document} "Documents ordered by upload time"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /kyc/documents [get]
func (h *KYCHandler) ListDocuments(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	docs, err := h.kycService.ListDocuments(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docs)
}

// GetDocument handles GET /api/v1/kyc/documents/:id
// @Summary Get a document
// @Description Returns the document with a short-lived download URL
// @Tags kyc
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response{data=service.DocumentDetail} "Document"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /kyc/documents/{id} [get]
func (h *KYCHandler) GetDocument(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}
	detail, err := h.kycService.GetDocument(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}

// Upload handles POST /api/v1/kyc/documents
// @Summary Upload a document
// @Description Uploads a file for one document type, replacing any previous document of that type
// @Tags kyc
// @Accept multipart/form-data
// @Produce json
// @Param document_type formData string true "Document type" Enums(identity_front,identity_back,passport,driver_license,utility_bill,bank_statement,proof_of_address)
// @Param file formData file true "Document file"
// @Success 201 {object} Response{data=UploadAccepted} "Document uploaded"
// @Failure 400 {object} ErrorResponseBody "Unknown type or unsupported format"
// @Failure 409 {object} ErrorResponseBody "Documents locked after submission"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 502 {object} ErrorResponseBody "Document storage unavailable"
// @Security BearerAuth
// @Router /kyc/documents [post]
func (h *KYCHandler) Upload(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	form, err := h.readUploadForm(c)
	if err != nil {
		switch {
		case errors.Is(err, errMissingFile):
			RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		case errors.Is(err, errMissingDocumentType):
			RespondError(c, http.StatusBadRequest, "MISSING_DOCUMENT_TYPE", "document_type field is required")
		case errors.Is(err, errMalformedForm):
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request must be multipart/form-data")
		default:
			HandleError(c, err)
		}
		return
	}
	docType := form.docType

	logger := log.WithFields(log.Fields{
		"request_id":    c.GetString(middleware.ContextKeyRequestID),
		"user_id":       userID,
		"document_type": docType,
	})
	doc, err := h.kycService.Upload(c.Request.Context(), service.KYCUploadInput{
		UserID:       userID,
		DocumentType: docType,
		File:         uploadedFile{bytes.NewReader(form.content)},
		Header:       &multipart.FileHeader{Filename: form.fileName, Size: int64(len(form.content))},
		OnProgress: func(percent int) {
			logger.Debugf("kycHandler.Upload: %d%%", percent)
		},
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	sum, err := h.kycService.Summary(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, UploadAccepted{Document: *doc, Summary: *sum})
}

// Delete handles DELETE /api/v1/kyc/documents/:id
// @Summary Delete a document
// @Description Deleting an unknown document succeeds
// @Tags kyc
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response "Document deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 502 {object} ErrorResponseBody "Document storage unavailable"
// @Security BearerAuth
// @Router /kyc/documents/{id} [delete]
func (h *KYCHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}
	if err := h.kycService.Delete(c.Request.Context(), userID, docID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "document deleted"})
}

// Submit handles POST /api/v1/kyc/submit
// @Summary Submit documents for review
// @Description Moves every pending document to under_review. When some documents fail to transition the response is 502 and carries the acknowledgement of those that did.
// @Tags kyc
// @Produce json
// @Success 200 {object} Response{data=domain.Acknowledgement} "Submitted"
// @Failure 422 {object} ErrorResponseBody "Submission not allowed; details list missing types"
// @Failure 502 {object} ErrorResponseBody "Partial failure"
// @Security BearerAuth
// @Router /kyc/submit [post]
func (h *KYCHandler) Submit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ack, err := h.kycService.Submit(c.Request.Context(), userID, middleware.GetEmail(c))
	if err != nil {
		if ack != nil {
			status, code, _ := MapDomainError(err)
			c.JSON(status, APIResponse{
				Success: false,
				Data:    ack,
				Error:   &APIError{Code: code, Message: "some documents could not be submitted; please retry"},
			})
			return
		}
		HandleError(c, err)
		return
	}
	RespondOK(c, ack)
}

const maxFieldBytes = 256

var (
	errMissingFile         = errors.New("missing file part")
	errMissingDocumentType = errors.New("missing document_type field")
	errMalformedForm       = errors.New("malformed multipart body")
)

// uploadForm is the parsed body of an upload request.
type uploadForm struct {
	docType  domain.DocumentType
	fileName string
	content  []byte
	hasFile  bool
}

// uploadedFile adapts buffered content to multipart.File.
type uploadedFile struct {
	*bytes.Reader
}

func (uploadedFile) Close() error { return nil }

// readUploadForm streams the multipart body. A document_type sent before the
// file is checked against the catalog before the file is read, so an unknown
// type is reported even when the file would exceed the request limit.
func (h *KYCHandler) readUploadForm(c *gin.Context) (*uploadForm, error) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	mr, err := c.Request.MultipartReader()
	if err != nil {
		return nil, errMalformedForm
	}

	form := &uploadForm{}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, uploadReadError(err)
		}

		switch part.FormName() {
		case "document_type":
			v, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				return nil, uploadReadError(err)
			}
			form.docType = domain.DocumentType(strings.TrimSpace(string(v)))
			if form.docType == "" {
				return nil, errMissingDocumentType
			}
			if !h.knownType(c.Request.Context(), form.docType) {
				return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, form.docType)
			}
		case "file":
			data, err := io.ReadAll(part)
			if err != nil {
				return nil, uploadReadError(err)
			}
			form.fileName = part.FileName()
			form.content = data
			form.hasFile = true
		}
	}

	if !form.hasFile {
		return nil, errMissingFile
	}
	if form.docType == "" {
		return nil, errMissingDocumentType
	}
	return form, nil
}

func (h *KYCHandler) knownType(ctx context.Context, t domain.DocumentType) bool {
	for _, r := range h.kycService.Requirements(ctx) {
		if r.Type == t {
			return true
		}
	}
	return false
}

func uploadReadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domain.ErrFileTooLarge
	}
	return fmt.Errorf("%w: %v", errMalformedForm, err)
}

// requireUser extracts the caller's ID. Returns false if auth context is
// missing (error response already written).
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, false
	}
	return userID, true
}
