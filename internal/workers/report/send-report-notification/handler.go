// internal/workers/report/send-report-notification/handler.go
package sendreportnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-report-notification"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "NOTIFICATION_SEND_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	subject, body := buildReport(input.Result)

	notificationID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	emailStatus := StatusDisabled
	if h.config.EmailEnabled && input.Email != "" {
		if err := h.sendEmail(ctx, input.Email, subject, body); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error": err,
				"email": input.Email,
			})
			emailStatus = StatusFailed
		} else {
			emailStatus = StatusSent
		}
	}

	// SMS is reserved for the worst verdict so founders are not paged
	// about every report.
	smsStatus := StatusDisabled
	if h.config.SMSEnabled && input.Phone != "" && string(input.Result.Decision.Decision) == h.config.SMSDecisionThreshold {
		if err := h.sendSMS(ctx, input.Phone, smsSummary(input.Result)); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error": err,
				"phone": input.Phone,
			})
			smsStatus = StatusFailed
		} else {
			smsStatus = StatusSent
		}
	}

	attempted := emailStatus != StatusDisabled || smsStatus != StatusDisabled
	delivered := emailStatus == StatusSent || smsStatus == StatusSent
	if attempted && !delivered {
		return nil, fmt.Errorf("%w: no channel delivered", ErrNotificationSendFailed)
	}

	return &Output{
		NotificationID: notificationID,
		EmailStatus:    emailStatus,
		SMSStatus:      smsStatus,
		SentAt:         sentAt,
	}, nil
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

func buildReport(result models.AnalysisResult) (string, string) {
	subject := fmt.Sprintf("Risk report for %s: %s", result.Input.StartupName, result.Decision.Decision)

	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", result.Decision.Decision)
	fmt.Fprintf(&b, "Risk score: %d/100 (%s)\n", result.RiskScore.Total, result.RiskScore.Level)
	fmt.Fprintf(&b, "Technical %d | Market %d | Execution %d\n\n", result.RiskScore.Technical, result.RiskScore.Market, result.RiskScore.Execution)
	fmt.Fprintf(&b, "%s\n", result.Decision.Reason)

	if len(result.Decision.Conditions) > 0 {
		b.WriteString("\nConditions:\n")
		for _, c := range result.Decision.Conditions {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}

	if len(result.ActionItems) > 0 {
		b.WriteString("\nNext steps:\n")
		for i, a := range result.ActionItems {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- [%s] %s (%s)\n", a.Priority, a.Text, a.Timeframe)
		}
	}

	return subject, b.String()
}

func smsSummary(result models.AnalysisResult) string {
	return fmt.Sprintf("%s: %s at %d/100 risk. %s",
		result.Input.StartupName,
		result.Decision.Decision,
		result.RiskScore.Total,
		result.Decision.Reason,
	)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
