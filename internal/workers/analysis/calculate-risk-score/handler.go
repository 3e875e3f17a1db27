// internal/workers/analysis/calculate-risk-score/handler.go
package calculateriskscore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-risk-score"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "RISK_CALCULATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	var score models.RiskScore
	if input.Mode == models.ModeLive {
		score = h.enrichedScore(input)
	} else {
		score = h.catalogScore(input.StartupInput)
	}

	h.logger.Info("risk score calculated", map[string]interface{}{
		"startupName": input.StartupInput.StartupName,
		"mode":        string(input.Mode),
		"total":       score.Total,
		"level":       score.Level,
	})

	return &Output{RiskScore: score}, nil
}

// catalogScore applies the additive rule table. Axes start at zero and
// each matched attribute adds a fixed amount.
func (h *Handler) catalogScore(in models.StartupInput) models.RiskScore {
	var technical, market, execution int

	switch in.Platform {
	case models.PlatformAPI:
		technical += 25
	case models.PlatformSaaS:
		technical += 15
	case models.PlatformApp:
		technical += 20
		execution += 10
	case models.PlatformWeb:
		technical += 10
	}

	switch in.RevenueModel {
	case models.RevenueFree:
		market += 35
		execution += 15
	case models.RevenueCommission:
		market += 20
	case models.RevenueSubscription:
		market += 15
	}

	switch in.Stage {
	case models.StageIdea:
		execution += 35
		market += 25
	case models.StageMVP:
		execution += 20
		market += 15
	case models.StageEarlyUsers:
		execution += 10
		market += 5
	}

	switch in.CriticalDependency {
	case models.DependencyAPI:
		technical += 30
	case models.DependencyPlatform:
		execution += 25
		technical += 15
	case models.DependencyRegulation:
		execution += 30
		market += 10
	}

	switch in.TargetUsers {
	case "consumers":
		market += 20
	case "enterprise":
		execution += 20
	case "smb":
		market += 10
		execution += 10
	}

	switch in.Industry {
	case "fintech":
		technical += 15
		execution += 15
	case "healthtech":
		execution += 20
		technical += 10
	case "marketplace":
		execution += 25
		market += 15
	case "social":
		market += 25
	}

	technical = clamp(technical)
	market = clamp(market)
	execution = clamp(execution)

	total := int(math.Round(0.3*float64(technical) + 0.4*float64(market) + 0.3*float64(execution)))

	return models.RiskScore{
		Technical: technical,
		Market:    market,
		Execution: execution,
		Total:     total,
		Level:     models.RiskLevelFor(total),
	}
}

// enrichedScore starts each axis at a baseline of 25 and moves it with
// the gathered evidence. The total is the plain average of the axes.
func (h *Handler) enrichedScore(input *Input) models.RiskScore {
	in := input.StartupInput

	technical := 25 + h.technicalAdjustment(input)
	market := 25 + h.marketAdjustment(input)
	execution := 25 + h.executionAdjustment(input)

	technical = clamp(technical)
	market = clamp(market)
	execution = clamp(execution)

	total := int(math.Round(float64(technical+market+execution) / 3.0))

	h.logger.Debug("enriched axis scores", map[string]interface{}{
		"startupName": in.StartupName,
		"technical":   technical,
		"market":      market,
		"execution":   execution,
	})

	return models.RiskScore{
		Technical: technical,
		Market:    market,
		Execution: execution,
		Total:     total,
		Level:     models.RiskLevelFor(total),
		Signals:   input.Signals,
	}
}

func (h *Handler) technicalAdjustment(input *Input) int {
	in := input.StartupInput
	adj := 0

	switch in.CriticalDependency {
	case models.DependencyAPI:
		adj += 15
	case models.DependencyPlatform:
		adj += 20
	case models.DependencyRegulation:
		adj += 30
	}

	switch in.Platform {
	case models.PlatformApp:
		adj += 15
	case models.PlatformSaaS, models.PlatformAPI:
		adj += 10
	default:
		adj += 5
	}

	switch in.Industry {
	case "healthtech", "fintech", "ai":
		adj += 10
	}

	for _, s := range input.Signals {
		if s.Type != "technical" {
			continue
		}
		switch s.Impact {
		case "negative":
			adj += 5
		case "positive":
			adj -= 5
		}
	}

	return adj
}

func (h *Handler) marketAdjustment(input *Input) int {
	in := input.StartupInput
	adj := 0

	direct, highThreat := 0, 0
	for _, c := range input.Competitors {
		if c.Type == "direct" {
			direct++
		}
		if c.Threat == "high" {
			highThreat++
		}
	}
	adj += 6*direct + 4*highThreat

	if len(input.Trends) > 0 {
		totalInterest := 0
		rising, declining := 0, 0
		for _, t := range input.Trends {
			totalInterest += t.Interest
			switch t.Trend {
			case "rising":
				rising++
			case "declining":
				declining++
			}
		}
		avgInterest := totalInterest / len(input.Trends)
		if avgInterest < 30 {
			adj += 20
		} else if avgInterest < 50 {
			adj += 10
		} else if avgInterest > 70 {
			adj -= 10
		}
		adj += 8*declining - 5*rising
	}

	switch in.TargetUsers {
	case "enterprise":
		adj += 15
	case "smb", "students":
		adj += 10
	default:
		adj += 5
	}

	for _, s := range input.Signals {
		if s.Type != "market" {
			continue
		}
		switch s.Impact {
		case "negative":
			adj += 4
		case "positive":
			adj -= 4
		}
	}

	return adj
}

func (h *Handler) executionAdjustment(input *Input) int {
	in := input.StartupInput
	adj := 0

	switch in.Stage {
	case models.StageIdea:
		adj += 30
	case models.StageMVP:
		adj += 15
	case models.StageEarlyUsers:
		adj += 5
	default:
		adj += 15
	}

	switch in.RevenueModel {
	case models.RevenueFree:
		adj += 20
	case models.RevenueFreemium, models.RevenueCommission:
		adj += 10
	case models.RevenueSubscription, models.RevenueOneTime:
		adj += 5
	default:
		adj += 10
	}

	similar, verySimilar := 0, 0
	for _, f := range input.FailedStartups {
		if f.Similarity > 50 {
			similar++
		}
		if f.Similarity > 70 {
			verySimilar++
		}
	}
	adj += 8*similar + 5*verySimilar

	for _, s := range input.Signals {
		if s.Type != "execution" {
			continue
		}
		switch s.Impact {
		case "negative":
			adj += 5
		case "positive":
			adj -= 5
		}
	}

	return adj
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
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
