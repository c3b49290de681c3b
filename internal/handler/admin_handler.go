package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"kycportal/internal/csvexport"
	"kycportal/internal/service"
)

const exportPageSize = 200

// AdminHandler handles reviewer endpoints.
type AdminHandler struct {
	kycService service.KYCService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(kycService service.KYCService) *AdminHandler {
	return &AdminHandler{kycService: kycService}
}

// ReviewQueue handles GET /api/v1/admin/kyc/review-queue
// @Summary List documents awaiting review
// @Description Oldest submissions first
// @Tags admin
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Document,meta=PagMeta} "Review queue"
// @Failure 403 {object} ErrorResponseBody "Admin role required"
// @Security BearerAuth
// @Router /admin/kyc/review-queue [get]
func (h *AdminHandler) ReviewQueue(c *gin.Context) {
	offset, limit := parsePagination(c)
	docs, total, err := h.kycService.ListReviewQueue(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportReviewQueue handles GET /api/v1/admin/kyc/review-queue/export
// @Summary Export the review queue as CSV
// @Tags admin
// @Produce text/csv
// @Success 200 {file} file "CSV file"
// @Failure 403 {object} ErrorResponseBody "Admin role required"
// @Security BearerAuth
// @Router /admin/kyc/review-queue/export [get]
func (h *AdminHandler) ExportReviewQueue(c *gin.Context) {
	ctx := c.Request.Context()

	// Fetch the first page before writing headers so errors still get a JSON body.
	docs, total, err := h.kycService.ListReviewQueue(ctx, 0, exportPageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("kyc_review_queue", time.Now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}

	for offset := 0; ; {
		if err := w.WriteDocuments(docs); err != nil {
			log.Errorf("adminHandler.ExportReviewQueue: writing rows: %v", err)
			return
		}
		offset += len(docs)
		if len(docs) == 0 || offset >= total {
			break
		}
		docs, _, err = h.kycService.ListReviewQueue(ctx, offset, exportPageSize)
		if err != nil {
			// Headers are already sent; truncate the export.
			log.Errorf("adminHandler.ExportReviewQueue: fetching page at offset %d: %v", offset, err)
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Errorf("adminHandler.ExportReviewQueue: flushing csv: %v", err)
	}
}

// Review handles POST /api/v1/admin/kyc/users/:user_id/documents/:id/review
// @Summary Record a review decision
// @Tags admin
// @Accept json
// @Produce json
// @Param user_id path string true "Document owner ID"
// @Param id path string true "Document ID"
// @Param body body ReviewRequest true "Decision"
// @Success 200 {object} Response{data=domain.Document} "Updated document"
// @Failure 400 {object} ErrorResponseBody "Invalid decision"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 409 {object} ErrorResponseBody "Document is not under review"
// @Security BearerAuth
// @Router /admin/kyc/users/{user_id}/documents/{id}/review [post]
func (h *AdminHandler) Review(c *gin.Context) {
	reviewerID, ok := requireUser(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	doc, err := h.kycService.Review(c.Request.Context(), service.ReviewInput{
		UserID:     userID,
		DocumentID: docID,
		ReviewerID: reviewerID,
		Decision:   req.Decision,
		Notes:      req.Notes,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
