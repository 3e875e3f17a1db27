// internal/workers/enrichment/search-competitors/models.go
package searchcompetitors

import "blindspot-workers/internal/models"

type Input struct {
	Idea     string `json:"idea"`
	Industry string `json:"industry"`
}

type Output struct {
	Competitors []models.Competitor `json:"competitors"`
	Source      string              `json:"source"`
}

// duckDuckGoResponse is the subset of the Instant Answer payload the
// worker reads.
type duckDuckGoResponse struct {
	Abstract      string         `json:"Abstract"`
	AbstractURL   string         `json:"AbstractURL"`
	Heading       string         `json:"Heading"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}
