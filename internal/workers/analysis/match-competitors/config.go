// internal/workers/analysis/match-competitors/config.go
package matchcompetitors

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
