// internal/workers/enrichment/fetch-industry-news/models.go
package fetchindustrynews

import "blindspot-workers/internal/models"

type Input struct {
	Industry string `json:"industry"`
}

type Output struct {
	Signals []models.RiskSignal `json:"signals"`
}

type algoliaResponse struct {
	Hits []algoliaHit `json:"hits"`
}

type algoliaHit struct {
	Title string `json:"title"`
}
