package noop

import (
	"context"

	log "github.com/sirupsen/logrus"

	"kycportal/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates a no-op EmailSender that only logs.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendSubmissionReceivedEmail(_ context.Context, toEmail string, documentCount int) error {
	log.WithFields(log.Fields{
		"to":        toEmail,
		"documents": documentCount,
	}).Infof("[NOOP EMAIL] submission received, status page %s/kyc", s.frontendURL)
	return nil
}
