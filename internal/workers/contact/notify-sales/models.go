package notifysales

import "consultancy-workers/internal/contact"

type Input struct {
	contact.Form
	SubmissionID string `json:"submissionId"`
	LeadScore    int    `json:"leadScore"`
	IsQualified  bool   `json:"isQualified"`
	CreatedAt    string `json:"createdAt"`
}

// Output reports both channels. TopicStatus is empty for unqualified leads,
// which are never published.
type Output struct {
	NotificationStatus string `json:"notificationStatus"`
	MessageID          string `json:"messageId,omitempty"`
	TopicStatus        string `json:"topicStatus,omitempty"`
	TopicMessageID     string `json:"topicMessageId,omitempty"`
	NotificationError  string `json:"notificationError,omitempty"`
	SentAt             string `json:"sentAt,omitempty"`
}
