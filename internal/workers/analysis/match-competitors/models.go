// internal/workers/analysis/match-competitors/models.go
package matchcompetitors

import "blindspot-workers/internal/models"

type Input struct {
	StartupInput models.StartupInput `json:"startupInput"`
}

type Output struct {
	Competitors []models.Competitor `json:"competitors"`
}
