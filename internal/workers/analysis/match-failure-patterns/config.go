// internal/workers/analysis/match-failure-patterns/config.go
package matchfailurepatterns

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
