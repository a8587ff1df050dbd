package getindustrybenchmarks

import "consultancy-workers/internal/casestudy"

type Input struct {
	Industry    string `json:"industry"`
	ProcessType string `json:"processType"`
}

type Output struct {
	Benchmarks []casestudy.Benchmark `json:"benchmarks"`
	Count      int                   `json:"count"`
}
