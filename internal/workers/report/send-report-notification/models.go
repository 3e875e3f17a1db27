// internal/workers/report/send-report-notification/models.go
package sendreportnotification

import "blindspot-workers/internal/models"

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type Input struct {
	Email  string                `json:"email,omitempty"`
	Phone  string                `json:"phone,omitempty"`
	Result models.AnalysisResult `json:"result"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	EmailStatus    string `json:"emailStatus"`
	SMSStatus      string `json:"smsStatus"`
	SentAt         string `json:"sentAt"`
}
