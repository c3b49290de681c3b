package mocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kycportal/internal/domain"
	"kycportal/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) GenerateAccessToken(userID uuid.UUID, email string, role domain.UserRole) (string, time.Time, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
