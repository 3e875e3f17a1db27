// internal/workers/analysis/run-analysis/config.go
package runanalysis

import "time"

type Config struct {
	Timeout     time.Duration
	DefaultMode string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     60 * time.Second,
		DefaultMode: "catalog",
	}
}
