package ses

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycportal/internal/config"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{}, nil
}

func testEmailConfig() *config.EmailConfig {
	return &config.EmailConfig{
		FromAddress: "noreply@kycportal.test",
		FromName:    "KYC Portal",
		FrontendURL: "https://app.kycportal.test",
	}
}

func TestSendSubmissionReceivedEmail(t *testing.T) {
	client := &fakeSES{}
	sender := newSender(client, testEmailConfig())

	require.NoError(t, sender.SendSubmissionReceivedEmail(context.Background(), "user@test.com", 3))

	require.NotNil(t, client.input)
	assert.Equal(t, "KYC Portal <noreply@kycportal.test>", *client.input.FromEmailAddress)
	assert.Equal(t, []string{"user@test.com"}, client.input.Destination.ToAddresses)
	assert.Contains(t, *client.input.Content.Simple.Body.Text.Data, "received 3 document(s)")
	assert.Contains(t, *client.input.Content.Simple.Body.Html.Data, "https://app.kycportal.test/kyc")
}

func TestSendSubmissionReceivedEmail_Error(t *testing.T) {
	sender := newSender(&fakeSES{err: errors.New("throttled")}, testEmailConfig())

	err := sender.SendSubmissionReceivedEmail(context.Background(), "user@test.com", 1)
	assert.ErrorContains(t, err, "throttled")
}
