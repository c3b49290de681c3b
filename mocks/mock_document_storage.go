package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"kycportal/internal/port"
)

// MockDocumentStorage is a mock implementation of port.DocumentStorage.
// Put drains the input body so progress reporting runs as with a real store.
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) Put(ctx context.Context, input port.PutObjectInput) (*port.PutObjectOutput, error) {
	if input.Body != nil {
		_, _ = io.Copy(io.Discard, input.Body)
	}
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.PutObjectOutput), args.Error(1)
}

func (m *MockDocumentStorage) Delete(ctx context.Context, locator string) error {
	args := m.Called(ctx, locator)
	return args.Error(0)
}

func (m *MockDocumentStorage) DownloadURL(ctx context.Context, locator string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, locator, expiry)
	return args.String(0), args.Error(1)
}
