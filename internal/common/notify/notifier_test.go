package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"consultancy-workers/internal/common/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func createTestConfig() config.NotificationConfig {
	var cfg config.NotificationConfig
	cfg.SES.Enabled = true
	cfg.SES.FromEmail = "hello@darkknight.tech"
	cfg.SES.SalesEmail = "sales@darkknight.tech"
	cfg.SNS.Enabled = true
	cfg.SNS.TopicARN = "arn:aws:sns:us-east-1:123456789012:sales-leads"
	cfg.SiteURL = "https://darkknight.tech"
	cfg.CompanyName = "Dark Knight Technologies"
	return cfg
}

// ==========================
// Rendering Tests
// ==========================

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     string
		data     map[string]interface{}
		expected string
	}{
		{"string", "Hi {{firstName}},", map[string]interface{}{"firstName": "Ada"}, "Hi Ada,"},
		{"whole float", "Score: {{leadScore}}/100", map[string]interface{}{"leadScore": float64(85)}, "Score: 85/100"},
		{"fraction", "{{roi}}%", map[string]interface{}{"roi": 123.456}, "123.46%"},
		{"int", "Step {{formStep}}/5", map[string]interface{}{"formStep": 3}, "Step 3/5"},
		{"missing removed", "Hello {{missing}}there", nil, "Hello there"},
		{"unterminated left alone", "Hello {{name", map[string]interface{}{"name": "x"}, "Hello {{name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.tmpl, tt.data))
		})
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1,234,567.50", Money(1234567.5))
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "-$82,500.00", Money(-82500))
}

func TestOrNotProvided(t *testing.T) {
	assert.Equal(t, "Not provided", OrNotProvided("  "))
	assert.Equal(t, "Acme", OrNotProvided("Acme"))
}

// ==========================
// SES Tests
// ==========================

func TestSendTemplate_Welcome(t *testing.T) {
	var captured *ses.SendEmailInput
	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{MessageId: aws.String("msg-001")}, nil
		},
	}

	n := NewNotifier(createTestConfig(), mockSES, nil)
	id, err := n.SendTemplate(context.Background(), "ada@example.com", TemplateWelcome, map[string]interface{}{"firstName": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "msg-001", id)

	require.NotNil(t, captured)
	assert.Equal(t, []string{"ada@example.com"}, captured.Destination.ToAddresses)
	assert.Equal(t, "hello@darkknight.tech", aws.ToString(captured.Source))
	assert.Equal(t, "Welcome to Dark Knight Technologies - Your AI Transformation Starts Here", aws.ToString(captured.Message.Subject.Data))

	body := aws.ToString(captured.Message.Body.Text.Data)
	assert.True(t, strings.HasPrefix(body, "Hi Ada,"))
	assert.Contains(t, body, "https://darkknight.tech/roi-calculator")
	assert.NotContains(t, body, "{{")
}

func TestSendTemplate_Errors(t *testing.T) {
	failing := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}

	n := NewNotifier(createTestConfig(), failing, nil)
	_, err := n.SendTemplate(context.Background(), "ada@example.com", TemplateWelcome, nil)
	assert.ErrorContains(t, err, "throttled")

	_, err = n.SendTemplate(context.Background(), "ada@example.com", "newsletter", nil)
	assert.ErrorContains(t, err, "unknown template")

	_, err = n.SendTemplate(context.Background(), "", TemplateWelcome, nil)
	assert.ErrorContains(t, err, "empty recipient")

	cfg := createTestConfig()
	cfg.SES.Enabled = false
	_, err = NewNotifier(cfg, failing, nil).SendTemplate(context.Background(), "ada@example.com", TemplateWelcome, nil)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestRenderTemplate_SalesLead(t *testing.T) {
	n := NewNotifier(createTestConfig(), nil, nil)
	subject, body, err := n.RenderTemplate(TemplateSalesLead, map[string]interface{}{
		"qualification":   "Qualified",
		"firstName":       "Ada",
		"lastName":        "Lovelace",
		"company":         OrNotProvided(""),
		"leadScore":       float64(92),
		"qualifiedAnswer": "Yes",
		"formStep":        5,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Qualified Lead: Ada Lovelace", subject)
	assert.Contains(t, body, "Company: Not provided")
	assert.Contains(t, body, "- Score: 92/100")
	assert.Contains(t, body, "- Form Step: 5/5")
}

// ==========================
// SNS Tests
// ==========================

func TestPublishLead(t *testing.T) {
	var captured *sns.PublishInput
	mockSNS := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			captured = params
			return &sns.PublishOutput{MessageId: aws.String("sns-001")}, nil
		},
	}

	n := NewNotifier(createTestConfig(), nil, mockSNS)
	id, err := n.PublishLead(context.Background(), strings.Repeat("s", 120), "body", map[string]string{"tier": "hot"})
	require.NoError(t, err)
	assert.Equal(t, "sns-001", id)

	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:sales-leads", aws.ToString(captured.TopicArn))
	assert.Len(t, aws.ToString(captured.Subject), 100)
	assert.Equal(t, "hot", aws.ToString(captured.MessageAttributes["tier"].StringValue))
}

func TestPublishLead_Disabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.SNS.TopicARN = ""
	_, err := NewNotifier(cfg, nil, &MockSNSService{}).PublishLead(context.Background(), "s", "b", nil)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewNotifier(createTestConfig(), nil, nil).PublishLead(context.Background(), "s", "b", nil)
	assert.ErrorIs(t, err, ErrDisabled)
}
