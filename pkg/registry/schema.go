package registry

// ActivityRegistry is the activities.json document modelers use to pick
// task types for service tasks.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string   `json:"id"`
	DisplayName          string   `json:"displayName"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	Version              string   `json:"version"`
	TaskType             string   `json:"taskType"`
	ImplementationStatus string   `json:"implementationStatus"`
	Timeout              string   `json:"timeout"`
	Retries              int      `json:"retries"`
	MaxJobsActive        int      `json:"maxJobsActive"`
	Enabled              bool     `json:"enabled"`
	Tags                 []string `json:"tags"`
}
