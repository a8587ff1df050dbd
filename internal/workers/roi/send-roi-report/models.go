package sendroireport

import "consultancy-workers/internal/roi"

type Input struct {
	roi.Result
	CalculationID string `json:"calculationId"`
	Email         string `json:"email"`
	Company       string `json:"company"`
}

type Output struct {
	ReportStatus string `json:"reportStatus"` // sent, failed or disabled
	MessageID    string `json:"messageId,omitempty"`
	SentAt       string `json:"sentAt,omitempty"`
	ReportError  string `json:"reportError,omitempty"`
}
