// internal/workers/enrichment/fetch-market-trends/models.go
package fetchmarkettrends

import "blindspot-workers/internal/models"

type Input struct {
	Keywords []string `json:"keywords"`
}

type Output struct {
	Trends []models.MarketTrend `json:"trends"`
	Source string               `json:"source"`
}

type duckDuckGoResponse struct {
	Abstract      string         `json:"Abstract"`
	Definition    string         `json:"Definition"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text string `json:"Text"`
}
