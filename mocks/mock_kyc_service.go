package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kycportal/internal/domain"
	"kycportal/internal/service"
)

// MockKYCService is a mock implementation of service.KYCService.
type MockKYCService struct {
	mock.Mock
}

func (m *MockKYCService) Requirements(ctx context.Context) []domain.Requirement {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Requirement)
}

func (m *MockKYCService) Summary(ctx context.Context, userID uuid.UUID) (*domain.KYCSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KYCSummary), args.Error(1)
}

func (m *MockKYCService) ListDocuments(ctx context.Context, userID uuid.UUID) ([]domain.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockKYCService) GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*service.DocumentDetail, error) {
	args := m.Called(ctx, userID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentDetail), args.Error(1)
}

func (m *MockKYCService) Upload(ctx context.Context, input service.KYCUploadInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockKYCService) Delete(ctx context.Context, userID, documentID uuid.UUID) error {
	args := m.Called(ctx, userID, documentID)
	return args.Error(0)
}

func (m *MockKYCService) Submit(ctx context.Context, userID uuid.UUID, email string) (*domain.Acknowledgement, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Acknowledgement), args.Error(1)
}

func (m *MockKYCService) Review(ctx context.Context, input service.ReviewInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockKYCService) ListReviewQueue(ctx context.Context, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}
