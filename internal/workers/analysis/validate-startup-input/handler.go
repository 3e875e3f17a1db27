// internal/workers/analysis/validate-startup-input/handler.go
package validatestartupinput

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"blindspot-workers/internal/common/errors"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "validate-startup-input"
)

// inputSchema is the closed vocabulary of a startup submission. The
// free-text fields only need to be non-blank; everything else is an enum.
const inputSchema = `{
	"type": "object",
	"required": ["startupName", "idea", "industry", "platform", "revenueModel", "stage", "criticalDependency", "targetUsers"],
	"properties": {
		"startupName": {"type": "string", "minLength": 1},
		"idea": {"type": "string", "minLength": 1},
		"industry": {"type": "string", "enum": ["fintech", "healthtech", "edtech", "ecommerce", "marketplace", "social", "productivity", "ai", "saas", "other"]},
		"platform": {"type": "string", "enum": ["web", "app", "saas", "api"]},
		"revenueModel": {"type": "string", "enum": ["free", "freemium", "subscription", "commission", "one_time"]},
		"stage": {"type": "string", "enum": ["idea", "mvp", "early_users"]},
		"criticalDependency": {"type": "string", "enum": ["none", "api", "platform", "regulation"]},
		"targetUsers": {"type": "string", "enum": ["consumers", "smb", "enterprise", "developers", "students"]}
	}
}`

type Handler struct {
	schema *gojsonschema.Schema
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(inputSchema))
	if err != nil {
		return nil, fmt.Errorf("compile input schema: %w", err)
	}
	return &Handler{
		schema: schema,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

	output, err := h.execute(context.Background(), &input)
	if err != nil {
		h.failJob(client, job, string(errors.ErrCodeInputValidationFailed), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	normalized := normalize(input.StartupInput)

	doc := map[string]interface{}{
		"startupName":        normalized.StartupName,
		"idea":               normalized.Idea,
		"industry":           normalized.Industry,
		"platform":           normalized.Platform,
		"revenueModel":       normalized.RevenueModel,
		"stage":              normalized.Stage,
		"criticalDependency": normalized.CriticalDependency,
		"targetUsers":        normalized.TargetUsers,
	}

	result, err := h.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, errors.NewInputValidationFailedError(err.Error())
	}

	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		h.logger.Warn("startup input rejected", map[string]interface{}{
			"startupName": input.StartupInput.StartupName,
			"errors":      errs,
		})
		return nil, errors.NewInputValidationFailedError(strings.Join(errs, "; "))
	}

	h.logger.Info("startup input validated", map[string]interface{}{
		"startupName": normalized.StartupName,
		"industry":    normalized.Industry,
	})

	return &Output{
		Valid:        true,
		StartupInput: normalized,
	}, nil
}

// normalize trims the free-text fields and lowercases the categorical
// ones so the rule tables can match on exact keys.
func normalize(in models.StartupInput) models.StartupInput {
	return models.StartupInput{
		StartupName:        strings.TrimSpace(in.StartupName),
		Idea:               strings.TrimSpace(in.Idea),
		Industry:           strings.ToLower(strings.TrimSpace(in.Industry)),
		Platform:           strings.ToLower(strings.TrimSpace(in.Platform)),
		RevenueModel:       strings.ToLower(strings.TrimSpace(in.RevenueModel)),
		Stage:              strings.ToLower(strings.TrimSpace(in.Stage)),
		CriticalDependency: strings.ToLower(strings.TrimSpace(in.CriticalDependency)),
		TargetUsers:        strings.ToLower(strings.TrimSpace(in.TargetUsers)),
	}
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
