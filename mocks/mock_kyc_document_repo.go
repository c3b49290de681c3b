package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kycportal/internal/domain"
)

// MockKYCDocumentRepo is a mock implementation of port.KYCDocumentRepository.
type MockKYCDocumentRepo struct {
	mock.Mock
}

func (m *MockKYCDocumentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockKYCDocumentRepo) GetByID(ctx context.Context, userID, documentID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, userID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockKYCDocumentRepo) ReplaceByType(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockKYCDocumentRepo) UpdateStatus(ctx context.Context, userID, documentID uuid.UUID, status domain.DocumentStatus, at time.Time) error {
	args := m.Called(ctx, userID, documentID, status, at)
	return args.Error(0)
}

func (m *MockKYCDocumentRepo) UpdateReview(ctx context.Context, userID, documentID uuid.UUID, status domain.DocumentStatus, notes string, at time.Time) error {
	args := m.Called(ctx, userID, documentID, status, notes, at)
	return args.Error(0)
}

func (m *MockKYCDocumentRepo) Delete(ctx context.Context, userID, documentID uuid.UUID) error {
	args := m.Called(ctx, userID, documentID)
	return args.Error(0)
}

func (m *MockKYCDocumentRepo) ListByStatus(ctx context.Context, status domain.DocumentStatus, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}
