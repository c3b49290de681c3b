package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendSubmissionReceivedEmail(ctx context.Context, toEmail string, documentCount int) error {
	args := m.Called(ctx, toEmail, documentCount)
	return args.Error(0)
}
