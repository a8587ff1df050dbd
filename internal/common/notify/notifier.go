// Package notify sends the prospect and sales emails over SES and publishes
// qualified leads to the sales SNS topic.
package notify

import (
	"context"
	"errors"
	"fmt"

	"consultancy-workers/internal/common/config"
	"consultancy-workers/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// Delivery outcomes reported by the notification workers.
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

var ErrDisabled = errors.New("notification channel disabled")

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// NewAWSClients builds SES and SNS clients from the default credential chain.
func NewAWSClients(ctx context.Context, region string) (*ses.Client, *sns.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, nil, fmt.Errorf("load AWS config: %w", err)
	}
	return ses.NewFromConfig(awsCfg), sns.NewFromConfig(awsCfg), nil
}

type Notifier struct {
	cfg config.NotificationConfig
	ses SESService
	sns SNSService
}

// NewNotifier treats a nil client as a disabled channel.
func NewNotifier(cfg config.NotificationConfig, sesClient SESService, snsClient SNSService) *Notifier {
	return &Notifier{cfg: cfg, ses: sesClient, sns: snsClient}
}

func (n *Notifier) EmailEnabled() bool {
	return n != nil && n.cfg.SES.Enabled && n.ses != nil
}

func (n *Notifier) TopicEnabled() bool {
	return n != nil && n.cfg.SNS.Enabled && n.sns != nil && n.cfg.SNS.TopicARN != ""
}

func (n *Notifier) SalesInbox() string {
	return n.cfg.SES.SalesEmail
}

// BaseData is merged under every template's data.
func (n *Notifier) BaseData() map[string]interface{} {
	return map[string]interface{}{
		"siteUrl":     n.cfg.SiteURL,
		"companyName": n.cfg.CompanyName,
	}
}

// RenderTemplate renders the named template over BaseData plus data.
func (n *Notifier) RenderTemplate(name string, data map[string]interface{}) (subject, body string, err error) {
	tmpl, ok := Templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown template %q", name)
	}
	merged := n.BaseData()
	for k, v := range data {
		merged[k] = v
	}
	return Render(tmpl.Subject, merged), Render(tmpl.Body, merged), nil
}

// SendTemplate renders the named template and emails it to the recipient.
// It returns the SES message id.
func (n *Notifier) SendTemplate(ctx context.Context, to, name string, data map[string]interface{}) (string, error) {
	if !n.EmailEnabled() {
		return "", ErrDisabled
	}
	if to == "" {
		return "", fmt.Errorf("template %s: empty recipient", name)
	}
	subject, body, err := n.RenderTemplate(name, data)
	if err != nil {
		return "", err
	}

	out, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(n.cfg.SES.FromEmail),
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("email", StatusFailed).Inc()
		return "", fmt.Errorf("send %s email: %w", name, err)
	}
	metrics.NotificationsSent.WithLabelValues("email", StatusSent).Inc()
	return aws.ToString(out.MessageId), nil
}

// PublishLead publishes a lead summary to the sales topic. Attributes become
// SNS string message attributes so subscribers can filter on them.
func (n *Notifier) PublishLead(ctx context.Context, subject, body string, attrs map[string]string) (string, error) {
	if !n.TopicEnabled() {
		return "", ErrDisabled
	}

	msgAttrs := make(map[string]snstypes.MessageAttributeValue, len(attrs))
	for k, v := range attrs {
		msgAttrs[k] = snstypes.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(v),
		}
	}

	// SNS caps subjects at 100 characters.
	if runes := []rune(subject); len(runes) > 100 {
		subject = string(runes[:100])
	}

	out, err := n.sns.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(n.cfg.SNS.TopicARN),
		Subject:           aws.String(subject),
		Message:           aws.String(body),
		MessageAttributes: msgAttrs,
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("sns", StatusFailed).Inc()
		return "", fmt.Errorf("publish lead: %w", err)
	}
	metrics.NotificationsSent.WithLabelValues("sns", StatusSent).Inc()
	return aws.ToString(out.MessageId), nil
}
