// internal/workers/analysis/calculate-risk-score/models.go
package calculateriskscore

import "blindspot-workers/internal/models"

type Input struct {
	StartupInput   models.StartupInput    `json:"startupInput"`
	Mode           models.AnalysisMode    `json:"mode"`
	Competitors    []models.Competitor    `json:"competitors,omitempty"`
	FailedStartups []models.FailedStartup `json:"failedStartups,omitempty"`
	Trends         []models.MarketTrend   `json:"trends,omitempty"`
	Signals        []models.RiskSignal    `json:"signals,omitempty"`
}

type Output struct {
	RiskScore models.RiskScore `json:"riskScore"`
}
