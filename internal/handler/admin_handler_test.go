package handler_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kycportal/internal/csvexport"
	"kycportal/internal/domain"
	"kycportal/internal/handler"
	"kycportal/internal/service"
	"kycportal/mocks"
)

func TestAdminHandler_ReviewQueue_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{"defaults", "", 0, 20},
		{"explicit", "?offset=40&limit=10", 40, 10},
		{"limit above max", "?limit=500", 0, 20},
		{"negative offset", "?offset=-5", 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockKYCService)
			h := handler.NewAdminHandler(svc)

			docs := []domain.Document{{ID: uuid.New(), Status: domain.DocumentStatusUnderReview}}
			svc.On("ListReviewQueue", mock.Anything, tt.wantOffset, tt.wantLimit).Return(docs, 41, nil)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/kyc/review-queue"+tt.query, nil)
			setAuthContext(c, uuid.New(), domain.RoleAdmin)

			h.ReviewQueue(c)

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decode(t, w)
			if assert.NotNil(t, resp.Meta) {
				assert.Equal(t, 41, resp.Meta.Total)
				assert.Equal(t, tt.wantLimit, resp.Meta.Limit)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAdminHandler_Review_Success(t *testing.T) {
	svc := new(mocks.MockKYCService)
	h := handler.NewAdminHandler(svc)
	reviewerID, userID, docID := uuid.New(), uuid.New(), uuid.New()

	svc.On("Review", mock.Anything, service.ReviewInput{
		UserID:     userID,
		DocumentID: docID,
		ReviewerID: reviewerID,
		Decision:   domain.DocumentStatusRejected,
		Notes:      "blurry",
	}).Return(&domain.Document{ID: docID, Status: domain.DocumentStatusRejected, ReviewerNotes: "blurry"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/review",
		bytes.NewBufferString(`{"decision":"rejected","notes":"blurry"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "user_id", Value: userID.String()}, {Key: "id", Value: docID.String()}}
	setAuthContext(c, reviewerID, domain.RoleAdmin)

	h.Review(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "rejected", data["status"])
	svc.AssertExpectations(t)
}

func TestAdminHandler_Review_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		docID  string
		body   string
	}{
		{"invalid user id", "bad", uuid.NewString(), `{"decision":"approved"}`},
		{"invalid document id", uuid.NewString(), "bad", `{"decision":"approved"}`},
		{"missing decision", uuid.NewString(), uuid.NewString(), `{"notes":"x"}`},
		{"malformed json", uuid.NewString(), uuid.NewString(), `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockKYCService)
			h := handler.NewAdminHandler(svc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodPost, "/review", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")
			c.Params = gin.Params{{Key: "user_id", Value: tt.userID}, {Key: "id", Value: tt.docID}}
			setAuthContext(c, uuid.New(), domain.RoleAdmin)

			h.Review(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "Review", mock.Anything, mock.Anything)
		})
	}
}

func TestAdminHandler_Review_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid decision", domain.ErrInvalidDecision, http.StatusBadRequest, "INVALID_DECISION"},
		{"not under review", domain.ErrDocumentNotUnderReview, http.StatusConflict, "DOCUMENT_NOT_UNDER_REVIEW"},
		{"not found", domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockKYCService)
			h := handler.NewAdminHandler(svc)
			svc.On("Review", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodPost, "/review",
				bytes.NewBufferString(`{"decision":"pending"}`))
			c.Request.Header.Set("Content-Type", "application/json")
			c.Params = gin.Params{{Key: "user_id", Value: uuid.NewString()}, {Key: "id", Value: uuid.NewString()}}
			setAuthContext(c, uuid.New(), domain.RoleAdmin)

			h.Review(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w).Error.Code)
		})
	}
}

func TestAdminHandler_ExportReviewQueue_Pages(t *testing.T) {
	svc := new(mocks.MockKYCService)
	h := handler.NewAdminHandler(svc)

	page := func(n int) []domain.Document {
		docs := make([]domain.Document, n)
		for i := range docs {
			docs[i] = domain.Document{ID: uuid.New(), DocumentType: domain.DocumentTypePassport, Status: domain.DocumentStatusUnderReview}
		}
		return docs
	}
	svc.On("ListReviewQueue", mock.Anything, 0, 200).Return(page(200), 250, nil).Once()
	svc.On("ListReviewQueue", mock.Anything, 200, 200).Return(page(50), 250, nil).Once()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/kyc/review-queue/export", http.NoBody)
	setAuthContext(c, uuid.New(), domain.RoleAdmin)

	h.ExportReviewQueue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "kyc_review_queue_")

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, csvexport.BOM, body[:3])

	records, err := csv.NewReader(bytes.NewReader(body[3:])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 251)
	assert.Equal(t, "Document ID", records[0][0])
	assert.Equal(t, "under_review", records[1][6])
	svc.AssertExpectations(t)
}

func TestAdminHandler_ExportReviewQueue_FirstPageError(t *testing.T) {
	svc := new(mocks.MockKYCService)
	h := handler.NewAdminHandler(svc)
	svc.On("ListReviewQueue", mock.Anything, 0, 200).Return(nil, 0, errors.New("db down"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/kyc/review-queue/export", http.NoBody)
	setAuthContext(c, uuid.New(), domain.RoleAdmin)

	h.ExportReviewQueue(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestAdminHandler_ExportReviewQueue_Empty(t *testing.T) {
	svc := new(mocks.MockKYCService)
	h := handler.NewAdminHandler(svc)
	svc.On("ListReviewQueue", mock.Anything, 0, 200).Return([]domain.Document{}, 0, nil).Once()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/kyc/review-queue/export", http.NoBody)
	setAuthContext(c, uuid.New(), domain.RoleAdmin)

	h.ExportReviewQueue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	records, err := csv.NewReader(bytes.NewReader(w.Body.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
	svc.AssertExpectations(t)
}
