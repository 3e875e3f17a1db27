// internal/workers/analysis/extract-assumptions/config.go
package extractassumptions

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
