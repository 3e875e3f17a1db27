// internal/workers/analysis/extract-assumptions/models.go
package extractassumptions

import "blindspot-workers/internal/models"

type Input struct {
	StartupInput models.StartupInput  `json:"startupInput"`
	Mode         models.AnalysisMode  `json:"mode"`
	Competitors  []models.Competitor  `json:"competitors,omitempty"`
	Trends       []models.MarketTrend `json:"trends,omitempty"`
}

type Output struct {
	Assumptions []models.Assumption `json:"assumptions"`
}
