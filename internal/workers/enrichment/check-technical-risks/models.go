// internal/workers/enrichment/check-technical-risks/models.go
package checktechnicalrisks

import "blindspot-workers/internal/models"

type Input struct {
	Dependencies []string `json:"dependencies"`
	Platform     string   `json:"platform"`
}

type Output struct {
	Signals []models.RiskSignal `json:"signals"`
}

type githubSearchResponse struct {
	Items []githubRepo `json:"items"`
}

type githubRepo struct {
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
	OpenIssuesCount int    `json:"open_issues_count"`
	UpdatedAt       string `json:"updated_at"`
}
