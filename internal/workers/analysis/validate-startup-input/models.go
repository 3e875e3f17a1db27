// internal/workers/analysis/validate-startup-input/models.go
package validatestartupinput

import "blindspot-workers/internal/models"

type Input struct {
	StartupInput models.StartupInput `json:"startupInput"`
}

type Output struct {
	Valid        bool                `json:"valid"`
	StartupInput models.StartupInput `json:"startupInput"`
	Errors       []string            `json:"errors,omitempty"`
}
