// internal/workers/enrichment/search-competitors/config.go
package searchcompetitors

import "time"

type Config struct {
	BaseURL    string
	ProxyURL   string
	Timeout    time.Duration
	CacheTTL   time.Duration
	MaxResults int
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:    "https://api.duckduckgo.com",
		Timeout:    8 * time.Second,
		CacheTTL:   time.Hour,
		MaxResults: 10,
	}
}
