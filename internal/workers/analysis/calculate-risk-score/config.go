// internal/workers/analysis/calculate-risk-score/config.go
package calculateriskscore

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
