// internal/workers/analysis/match-failure-patterns/models.go
package matchfailurepatterns

import "blindspot-workers/internal/models"

type Input struct {
	StartupInput models.StartupInput `json:"startupInput"`
}

type Output struct {
	FailedStartups []models.FailedStartup  `json:"failedStartups"`
	Patterns       []models.FailurePattern `json:"patterns,omitempty"`
}
