// internal/workers/analysis/run-analysis/handler.go
package runanalysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/common/metrics"
	"blindspot-workers/internal/models"
	"blindspot-workers/internal/orchestrator"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "run-analysis"
)

// Handler drives the whole pipeline in a single job. Processes that do
// not orchestrate the per-step workers in BPMN use this one instead.
type Handler struct {
	config       *Config
	orchestrator *orchestrator.Orchestrator
	logger       logger.Logger
}

func NewHandler(config *Config, orch *orchestrator.Orchestrator, log logger.Logger) *Handler {
	return &Handler{
		config:       config,
		orchestrator: orch,
		logger:       log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey": job.Key,
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
		errorCode := "ANALYSIS_FAILED"
		if strings.Contains(err.Error(), "INPUT_VALIDATION_FAILED") {
			errorCode = "INPUT_VALIDATION_FAILED"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	mode := input.Mode
	if mode == "" {
		mode = h.config.DefaultMode
	}

	var result *models.AnalysisResult
	var err error
	switch models.AnalysisMode(mode) {
	case models.ModeLive:
		result, err = h.orchestrator.RunFullAnalysis(ctx, input.StartupInput)
	case models.ModeCatalog:
		result, err = h.orchestrator.RunAnalysis(ctx, input.StartupInput)
	default:
		return nil, fmt.Errorf("unknown analysis mode: %s", mode)
	}
	if err != nil {
		return nil, err
	}

	metrics.AnalysesCompleted.WithLabelValues(string(result.Mode), string(result.Decision.Decision)).Inc()
	h.logger.Info("analysis complete", map[string]interface{}{
		"startupName": input.StartupName,
		"mode":        mode,
		"decision":    result.Decision.Decision,
		"totalRisk":   result.RiskScore.Total,
	})

	return &Output{Result: *result}, nil
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
