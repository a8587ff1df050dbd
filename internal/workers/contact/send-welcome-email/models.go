package sendwelcomeemail

type Input struct {
	SubmissionID string `json:"submissionId"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
}

type Output struct {
	WelcomeStatus string `json:"welcomeStatus"` // sent, failed or disabled
	MessageID     string `json:"messageId,omitempty"`
	SentAt        string `json:"sentAt,omitempty"`
	WelcomeError  string `json:"welcomeError,omitempty"`
}
