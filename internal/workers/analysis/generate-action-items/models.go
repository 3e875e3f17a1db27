// internal/workers/analysis/generate-action-items/models.go
package generateactionitems

import "blindspot-workers/internal/models"

type Input struct {
	StartupInput   models.StartupInput    `json:"startupInput"`
	Mode           models.AnalysisMode    `json:"mode"`
	RiskScore      models.RiskScore       `json:"riskScore"`
	Assumptions    []models.Assumption    `json:"assumptions,omitempty"`
	Competitors    []models.Competitor    `json:"competitors,omitempty"`
	FailedStartups []models.FailedStartup `json:"failedStartups,omitempty"`
}

type Output struct {
	ActionItems []models.ActionItem `json:"actionItems"`
}
