// internal/workers/report/send-report-notification/handler_test.go
package sendreportnotification

import (
	"context"
	"errors"
	"testing"
	"time"

	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func newTestHandler(t *testing.T, config *Config, sesClient SESService, snsClient SNSService) *Handler {
	return &Handler{
		config:    config,
		logger:    logger.NewTestLogger(t),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

func blockResult() models.AnalysisResult {
	return models.AnalysisResult{
		Input: models.StartupInput{StartupName: "PayFlow"},
		RiskScore: models.RiskScore{
			Technical: 70,
			Market:    60,
			Execution: 85,
			Total:     71,
			Level:     "High",
		},
		Decision: models.DecisionResult{
			Decision: models.DecisionBlock,
			Reason:   "Critical risk level detected (71/100). The combination of risks makes this venture extremely dangerous.",
		},
		ActionItems: []models.ActionItem{
			{ID: "action1", Text: "Interview 20 potential users", Priority: "high", Category: "validate", Timeframe: "Week 1-2"},
		},
	}
}

func goResult() models.AnalysisResult {
	r := blockResult()
	r.Input.StartupName = "NoteNest"
	r.RiskScore = models.RiskScore{Total: 14, Level: "Low", Technical: 10, Market: 20, Execution: 10}
	r.Decision = models.DecisionResult{
		Decision: models.DecisionGo,
		Reason:   "Risk levels are manageable (14/100). Proceed with standard validation practices.",
	}
	return r
}

func TestExecute_EmailSent(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	h := newTestHandler(t, LoadConfig(), sesMock, snsMock)

	output, err := h.Execute(context.Background(), &Input{
		Email:  "founder@example.com",
		Result: blockResult(),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.EmailStatus)
	assert.Equal(t, StatusDisabled, output.SMSStatus)
	assert.NotEmpty(t, output.NotificationID)
	assert.Contains(t, output.NotificationID, "-")

	_, err = time.Parse(time.RFC3339, output.SentAt)
	assert.NoError(t, err)

	require.Len(t, sesMock.inputs, 1)
	sent := sesMock.inputs[0]
	assert.Equal(t, "reports@blindspot.dev", *sent.Source)
	assert.Equal(t, []string{"founder@example.com"}, sent.Destination.ToAddresses)
	assert.Equal(t, "Risk report for PayFlow: BLOCK", *sent.Message.Subject.Data)
	assert.Contains(t, *sent.Message.Body.Text.Data, "Risk score: 71/100 (High)")
	assert.Contains(t, *sent.Message.Body.Text.Data, "Interview 20 potential users")
	assert.Empty(t, snsMock.inputs)
}

func TestExecute_SMSFiresOnlyAtThreshold(t *testing.T) {
	config := LoadConfig()
	config.SMSEnabled = true

	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	h := newTestHandler(t, config, sesMock, snsMock)

	// BLOCK verdict reaches the threshold
	output, err := h.Execute(context.Background(), &Input{
		Email:  "founder@example.com",
		Phone:  "+15550001111",
		Result: blockResult(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.SMSStatus)
	require.Len(t, snsMock.inputs, 1)
	assert.Equal(t, "+15550001111", *snsMock.inputs[0].PhoneNumber)
	assert.Contains(t, *snsMock.inputs[0].Message, "PayFlow: BLOCK at 71/100 risk")

	// GO verdict does not
	output, err = h.Execute(context.Background(), &Input{
		Email:  "founder@example.com",
		Phone:  "+15550001111",
		Result: goResult(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.SMSStatus)
	assert.Len(t, snsMock.inputs, 1)
}

func TestExecute_SMSDisabledByConfig(t *testing.T) {
	snsMock := &mockSNS{}
	h := newTestHandler(t, LoadConfig(), &mockSES{}, snsMock)

	output, err := h.Execute(context.Background(), &Input{
		Email:  "founder@example.com",
		Phone:  "+15550001111",
		Result: blockResult(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.SMSStatus)
	assert.Empty(t, snsMock.inputs)
}

func TestExecute_NoRecipientsDisablesBothChannels(t *testing.T) {
	h := newTestHandler(t, LoadConfig(), &mockSES{}, &mockSNS{})

	output, err := h.Execute(context.Background(), &Input{Result: blockResult()})
	require.NoError(t, err)

	assert.Equal(t, StatusDisabled, output.EmailStatus)
	assert.Equal(t, StatusDisabled, output.SMSStatus)
}

func TestExecute_AllChannelsFailedReturnsError(t *testing.T) {
	sesMock := &mockSES{err: errors.New("throttled")}
	h := newTestHandler(t, LoadConfig(), sesMock, &mockSNS{})

	output, err := h.Execute(context.Background(), &Input{
		Email:  "founder@example.com",
		Result: blockResult(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotificationSendFailed))
	assert.Nil(t, output)
}

func TestExecute_EmailFailsButSMSDelivers(t *testing.T) {
	config := LoadConfig()
	config.SMSEnabled = true

	sesMock := &mockSES{err: errors.New("throttled")}
	snsMock := &mockSNS{}
	h := newTestHandler(t, config, sesMock, snsMock)

	output, err := h.Execute(context.Background(), &Input{
		Email:  "founder@example.com",
		Phone:  "+15550001111",
		Result: blockResult(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, output.EmailStatus)
	assert.Equal(t, StatusSent, output.SMSStatus)
}
