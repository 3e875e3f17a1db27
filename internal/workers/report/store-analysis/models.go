// internal/workers/report/store-analysis/models.go
package storeanalysis

import "blindspot-workers/internal/models"

type Input struct {
	UserID string                `json:"userId"`
	Result models.AnalysisResult `json:"result"`
}

type Output struct {
	AnalysisID string `json:"analysisId"`
	Stored     bool   `json:"stored"`
	Indexed    bool   `json:"indexed"`
}
