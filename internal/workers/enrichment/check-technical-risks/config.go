// internal/workers/enrichment/check-technical-risks/config.go
package checktechnicalrisks

import "time"

type Config struct {
	BaseURL string
	Timeout time.Duration
	MaxDeps int
}

func LoadConfig() *Config {
	return &Config{
		BaseURL: "https://api.github.com",
		Timeout: 8 * time.Second,
		MaxDeps: 3,
	}
}
