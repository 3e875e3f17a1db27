// internal/workers/report/send-report-notification/config.go
package sendreportnotification

import "time"

type Config struct {
	Timeout              time.Duration
	EmailEnabled         bool
	FromEmail            string
	SMSEnabled           bool
	SMSDecisionThreshold string
	AWSRegion            string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:              10 * time.Second,
		EmailEnabled:         true,
		FromEmail:            "reports@blindspot.dev",
		SMSEnabled:           false,
		SMSDecisionThreshold: "BLOCK",
		AWSRegion:            "us-east-1",
	}
}
