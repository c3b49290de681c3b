package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycportal/internal/authctx"
	"kycportal/internal/domain"
	"kycportal/internal/middleware"
	"kycportal/internal/service"
	"kycportal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	userID := uuid.New()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{},
		UserID:           userID,
		Email:            "user@test.com",
		Role:             domain.RoleCustomer,
	}
	mockAuth.On("ValidateToken", "valid-token").Return(claims, nil)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(mockAuth))
	r.GET("/test", func(c *gin.Context) {
		uid, _ := middleware.GetUserID(c)
		bearer, _ := authctx.BearerFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"user_id": uid,
			"email":   middleware.GetEmail(c),
			"role":    middleware.GetRole(c),
			"bearer":  bearer,
		})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID.String(), resp["user_id"])
	assert.Equal(t, "user@test.com", resp["email"])
	assert.Equal(t, "customer", resp["role"])
	assert.Equal(t, "valid-token", resp["bearer"])
	mockAuth.AssertExpectations(t)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"invalid token", "Bearer bad-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := new(mocks.MockAuthService)
			mockAuth.On("ValidateToken", "bad-token").Return(nil, errors.New("invalid"))

			r := gin.New()
			r.Use(middleware.AuthMiddleware(mockAuth))
			r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		setRole  bool
		wantCode int
	}{
		{"admin allowed", "admin", true, http.StatusOK},
		{"customer forbidden", "customer", true, http.StatusForbidden},
		{"no role", "", false, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.setRole {
					c.Set(middleware.ContextKeyRole, tt.role)
				}
				c.Next()
			})
			r.Use(middleware.RequireRole(domain.RoleAdmin))
			r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/admin", http.NoBody)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestGetUserID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := middleware.GetUserID(c)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
