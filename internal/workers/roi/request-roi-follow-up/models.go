package requestroifollowup

type Input struct {
	CalculationID string `json:"calculationId"`
}

type Output struct {
	CalculationID     string `json:"calculationId"`
	FollowUpRequested bool   `json:"followUpRequested"`
	RequestedAt       string `json:"requestedAt"`
}
