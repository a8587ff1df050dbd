package searchcasestudies

import "consultancy-workers/internal/casestudy"

type Input struct {
	casestudy.SearchQuery
}

type Output struct {
	casestudy.SearchResult
	From int `json:"from"`
	Size int `json:"size"`
}
