// internal/workers/enrichment/search-failed-startups/config.go
package searchfailedstartups

import "time"

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxResults int
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:    "https://hn.algolia.com/api/v1",
		Timeout:    8 * time.Second,
		MaxResults: 5,
	}
}
