// internal/workers/analysis/match-failure-patterns/handler.go
package matchfailurepatterns

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "match-failure-patterns"

	maxMatches = 4
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

	output, err := h.execute(context.Background(), &input)
	if err != nil {
		h.failJob(client, job, "FAILURE_MATCH_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute derives pattern tags from the input profile, scores each
// catalog post-mortem by tag overlap, and keeps the best matches.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	tags := deriveTags(input.StartupInput)

	type scored struct {
		failure models.FailedStartup
		overlap int
	}

	var candidates []scored
	for _, f := range h.catalog.Failures {
		overlap := 0
		for _, t := range f.PatternTags {
			if tags[t] {
				overlap++
			}
		}
		if overlap > 0 {
			candidates = append(candidates, scored{failure: f, overlap: overlap})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overlap > candidates[j].overlap
	})
	if len(candidates) > maxMatches {
		candidates = candidates[:maxMatches]
	}

	matched := make([]models.FailedStartup, 0, len(candidates))
	for _, c := range candidates {
		matched = append(matched, c.failure)
	}

	patterns := h.summarizePatterns(tags, matched)

	h.logger.Info("failure patterns matched", map[string]interface{}{
		"startupName": input.StartupInput.StartupName,
		"tags":        len(tags),
		"matches":     len(matched),
	})

	return &Output{FailedStartups: matched, Patterns: patterns}, nil
}

// deriveTags maps input attributes to failure pattern tags. The map
// doubles as a set so repeated tags collapse.
func deriveTags(in models.StartupInput) map[string]bool {
	tags := make(map[string]bool)

	switch in.RevenueModel {
	case models.RevenueFree:
		tags["unit_economics"] = true
		tags["cash_burn"] = true
	case models.RevenueCommission:
		tags["marketplace_leakage"] = true
	}

	switch in.Platform {
	case models.PlatformApp:
		tags["high_cac"] = true
		tags["low_retention"] = true
	case models.PlatformSaaS:
		tags["churn"] = true
	}

	if in.Stage == models.StageIdea {
		tags["product_market_fit"] = true
		tags["over_promise"] = true
	}

	switch in.CriticalDependency {
	case models.DependencyAPI:
		tags["technical_failure"] = true
	case models.DependencyPlatform:
		tags["distribution"] = true
	}

	switch in.Industry {
	case "social":
		tags["low_retention"] = true
		tags["content_moderation"] = true
	case "marketplace":
		tags["marketplace_leakage"] = true
		tags["operational_complexity"] = true
	case "ai":
		tags["over_promise"] = true
		tags["ai_washing"] = true
	}

	if in.TargetUsers == "consumers" {
		tags["high_cac"] = true
	}

	return tags
}

// summarizePatterns counts how often each derived tag shows up in the
// matched failures. Tags with no hits are dropped.
func (h *Handler) summarizePatterns(tags map[string]bool, matched []models.FailedStartup) []models.FailurePattern {
	counts := make(map[string]int)
	for _, f := range matched {
		for _, t := range f.PatternTags {
			if tags[t] {
				counts[t]++
			}
		}
	}

	ordered := make([]string, 0, len(counts))
	for t := range counts {
		ordered = append(ordered, t)
	}
	sort.Strings(ordered)

	patterns := make([]models.FailurePattern, 0, len(ordered))
	for _, t := range ordered {
		label := h.catalog.PatternLabels[t]
		if label == "" {
			label = t
		}
		patterns = append(patterns, models.FailurePattern{
			Tag:     t,
			Label:   label,
			Matches: counts[t],
		})
	}
	return patterns
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
