package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"kycportal/internal/config"
	"kycportal/internal/port"
)

// sendEmailAPI is the part of the SES v2 client the sender uses.
type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	client      sendEmailAPI
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, cfg *config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newSender(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func newSender(client sendEmailAPI, cfg *config.EmailConfig) *sesSender {
	return &sesSender{
		client:      client,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		frontendURL: cfg.FrontendURL,
	}
}

func (s *sesSender) SendSubmissionReceivedEmail(ctx context.Context, toEmail string, documentCount int) error {
	statusURL := s.frontendURL + "/kyc"

	subject := "We received your verification documents"
	htmlBody := buildSubmissionReceivedHTML(documentCount, statusURL)
	textBody := fmt.Sprintf("Hi,\n\nWe received %d document(s) for identity verification. "+
		"Our team usually reviews submissions within two business days.\n\n"+
		"You can follow the status at:\n%s\n\n%s", documentCount, statusURL, s.fromName)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildSubmissionReceivedHTML(documentCount int, statusURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Documents received</h2>
  <p>We received %d document(s) for identity verification.</p>
  <p>Our team usually reviews submissions within two business days. We will let you know once a decision is made.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View status</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">You are receiving this email because you submitted documents for verification.</p>
</body>
</html>`, documentCount, statusURL)
}
