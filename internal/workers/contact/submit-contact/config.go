package submitcontact

import (
	"time"

	"consultancy-workers/internal/leadscore"
)

type Config struct {
	Timeout                time.Duration
	QualificationThreshold int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                15 * time.Second,
		QualificationThreshold: leadscore.DefaultQualificationThreshold,
	}
}
