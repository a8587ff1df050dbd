package scorelead

import "consultancy-workers/internal/contact"

type Input struct {
	contact.Form
}

type Output struct {
	contact.Evaluation
	Threshold int `json:"qualificationThreshold"`
}
