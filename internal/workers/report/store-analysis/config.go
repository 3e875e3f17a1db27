// internal/workers/report/store-analysis/config.go
package storeanalysis

import "time"

type Config struct {
	Timeout   time.Duration
	IndexName string
	CacheTTL  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   15 * time.Second,
		IndexName: "blindspot-reports",
		CacheTTL:  24 * time.Hour,
	}
}
