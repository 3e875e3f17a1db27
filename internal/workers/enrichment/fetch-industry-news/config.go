// internal/workers/enrichment/fetch-industry-news/config.go
package fetchindustrynews

import "time"

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxSignals int
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:    "https://hn.algolia.com/api/v1",
		Timeout:    8 * time.Second,
		MaxSignals: 5,
	}
}
