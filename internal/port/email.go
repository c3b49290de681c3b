package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendSubmissionReceivedEmail(ctx context.Context, toEmail string, documentCount int) error
}
