package casestudystats

import "consultancy-workers/internal/casestudy"

type Input struct{}

type Output struct {
	casestudy.Stats
	Cached bool `json:"cached"`
}
