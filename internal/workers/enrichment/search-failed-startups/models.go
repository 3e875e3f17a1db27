// internal/workers/enrichment/search-failed-startups/models.go
package searchfailedstartups

import "blindspot-workers/internal/models"

type Input struct {
	Idea     string `json:"idea"`
	Industry string `json:"industry"`
}

type Output struct {
	FailedStartups []models.FailedStartup `json:"failedStartups"`
	Source         string                 `json:"source"`
}

type algoliaResponse struct {
	Hits []algoliaHit `json:"hits"`
}

type algoliaHit struct {
	ObjectID  string `json:"objectID"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}
