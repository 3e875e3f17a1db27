// internal/workers/enrichment/fetch-market-trends/config.go
package fetchmarkettrends

import "time"

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxKeywords int
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:     "https://api.duckduckgo.com",
		Timeout:     8 * time.Second,
		MaxKeywords: 5,
	}
}
