package sendwelcomeemail

import (
	"context"
	"errors"
	"testing"
	"time"

	"consultancy-workers/internal/common/config"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/notify"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

func createNotifier(enabled bool, sesClient notify.SESService) *notify.Notifier {
	var cfg config.NotificationConfig
	cfg.SES.Enabled = enabled
	cfg.SES.FromEmail = "hello@darkknight.tech"
	cfg.SiteURL = "https://darkknight.tech"
	cfg.CompanyName = "Dark Knight Technologies"
	return notify.NewNotifier(cfg, sesClient, nil)
}

func newTestHandler(t *testing.T, notifier *notify.Notifier) *Handler {
	h := NewHandler(LoadConfig(), notifier, logger.NewTestLogger(t))
	h.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return h
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		sesErr         error
		enabled        bool
		expectedStatus string
		expectedTo     string
		greeting       string
	}{
		{
			name:           "sent",
			input:          &Input{SubmissionID: "sub-1", Email: " Grace@Navy.example ", FirstName: "Grace"},
			enabled:        true,
			expectedStatus: notify.StatusSent,
			expectedTo:     "grace@navy.example",
			greeting:       "Hi Grace,",
		},
		{
			name:           "missing first name",
			input:          &Input{Email: "ops@example.com"},
			enabled:        true,
			expectedStatus: notify.StatusSent,
			expectedTo:     "ops@example.com",
			greeting:       "Hi there,",
		},
		{
			name:           "ses rejects",
			input:          &Input{Email: "ops@example.com", FirstName: "Ops"},
			enabled:        true,
			sesErr:         errors.New("MessageRejected"),
			expectedStatus: notify.StatusFailed,
		},
		{
			name:           "invalid recipient",
			input:          &Input{Email: "not-an-address"},
			enabled:        true,
			expectedStatus: notify.StatusFailed,
		},
		{
			name:           "disabled",
			input:          &Input{Email: "ops@example.com"},
			expectedStatus: notify.StatusDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent *ses.SendEmailInput
			mockSES := &MockSESService{
				SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
					sent = params
					if tt.sesErr != nil {
						return nil, tt.sesErr
					}
					return &ses.SendEmailOutput{MessageId: aws.String("ses-welcome-1")}, nil
				},
			}
			h := newTestHandler(t, createNotifier(tt.enabled, mockSES))

			output, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, output.WelcomeStatus)

			if tt.expectedStatus != notify.StatusSent {
				assert.Empty(t, output.SentAt)
				return
			}
			require.NotNil(t, sent)
			assert.Equal(t, []string{tt.expectedTo}, sent.Destination.ToAddresses)
			assert.Equal(t, "Welcome to Dark Knight Technologies - Your AI Transformation Starts Here", aws.ToString(sent.Message.Subject.Data))
			body := aws.ToString(sent.Message.Body.Text.Data)
			assert.Contains(t, body, tt.greeting)
			assert.Contains(t, body, "https://darkknight.tech/roi-calculator")
			assert.Equal(t, "ses-welcome-1", output.MessageID)
			assert.Equal(t, "2026-10-19T09:00:00Z", output.SentAt)
		})
	}
}
