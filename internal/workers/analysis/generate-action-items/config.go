// internal/workers/analysis/generate-action-items/config.go
package generateactionitems

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
