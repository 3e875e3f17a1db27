// internal/workers/analysis/run-analysis/models.go
package runanalysis

import "blindspot-workers/internal/models"

type Input struct {
	models.StartupInput
	Mode string `json:"mode,omitempty"` // catalog | live
}

type Output struct {
	Result models.AnalysisResult `json:"result"`
}
