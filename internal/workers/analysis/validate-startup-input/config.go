// internal/workers/analysis/validate-startup-input/config.go
package validatestartupinput

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
