// internal/workers/analysis/make-decision/models.go
package makedecision

import "blindspot-workers/internal/models"

type Input struct {
	StartupInput   models.StartupInput    `json:"startupInput"`
	Mode           models.AnalysisMode    `json:"mode"`
	RiskScore      models.RiskScore       `json:"riskScore"`
	Competitors    []models.Competitor    `json:"competitors,omitempty"`
	FailedStartups []models.FailedStartup `json:"failedStartups,omitempty"`
}

type Output struct {
	Decision models.DecisionResult `json:"decision"`
}
