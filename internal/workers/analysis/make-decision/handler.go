// internal/workers/analysis/make-decision/handler.go
package makedecision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "make-decision"
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
		h.failJob(client, job, "DECISION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	var decision models.DecisionResult
	if input.Mode == models.ModeLive {
		decision = h.enrichedDecision(input)
	} else {
		decision = h.catalogDecision(input.RiskScore)
	}

	h.logger.Info("decision made", map[string]interface{}{
		"startupName": input.StartupInput.StartupName,
		"mode":        string(input.Mode),
		"decision":    decision.Decision,
	})

	return &Output{Decision: decision}, nil
}

// catalogDecision is a first-match-wins rule ladder over the axis
// scores. Catalog mode never returns CONDITIONAL_GO.
func (h *Handler) catalogDecision(score models.RiskScore) models.DecisionResult {
	switch {
	case score.Total >= 70:
		return models.DecisionResult{
			Decision: models.DecisionBlock,
			Reason:   fmt.Sprintf("Critical risk level detected (%d/100). Multiple high-risk factors make this venture extremely risky at this stage.", score.Total),
		}
	case score.Market >= 70 && score.Execution >= 50:
		return models.DecisionResult{
			Decision: models.DecisionBlock,
			Reason:   "Market risk is critically high with significant execution challenges. Validate market demand before proceeding.",
		}
	case score.Technical >= 80:
		return models.DecisionResult{
			Decision: models.DecisionBlock,
			Reason:   "Technical dependencies create unacceptable risk. Reduce external dependencies before building.",
		}
	case score.Total >= 40 || score.Market >= 50 || score.Technical >= 50 || score.Execution >= 50:
		var conditions []string
		if score.Market >= 50 {
			conditions = append(conditions, "validate market demand first")
		}
		if score.Technical >= 50 {
			conditions = append(conditions, "reduce technical dependencies")
		}
		if score.Execution >= 50 {
			conditions = append(conditions, "de-risk execution with smaller scope")
		}
		reason := fmt.Sprintf("Moderate risk detected (%d/100). Address key risks before full commitment.", score.Total)
		if len(conditions) > 0 {
			reason = fmt.Sprintf("Moderate risk detected (%d/100). Recommended: %s.", score.Total, strings.Join(conditions, ", "))
		}
		return models.DecisionResult{
			Decision:   models.DecisionProceedWithCaution,
			Reason:     reason,
			Conditions: conditions,
		}
	default:
		return models.DecisionResult{
			Decision: models.DecisionGo,
			Reason:   fmt.Sprintf("Risk levels are manageable (%d/100). Proceed with standard validation practices and monitor key assumptions.", score.Total),
		}
	}
}

// enrichedDecision folds competitor and failure evidence into the
// verdict and writes a narrative reason for each outcome.
func (h *Handler) enrichedDecision(input *Input) models.DecisionResult {
	score := input.RiskScore
	in := input.StartupInput

	direct, highThreat := 0, 0
	for _, c := range input.Competitors {
		if c.Type == "direct" {
			direct++
		}
		if c.Threat == "high" {
			highThreat++
		}
	}
	similarFailures := 0
	for _, f := range input.FailedStartups {
		if f.Similarity > 60 {
			similarFailures++
		}
	}

	critical := 0
	if score.Total >= 75 {
		critical++
	}
	if direct >= 5 && highThreat >= 3 {
		critical++
	}
	if similarFailures >= 3 {
		critical++
	}
	if score.Technical >= 80 || score.Market >= 80 || score.Execution >= 80 {
		critical++
	}

	switch {
	case critical >= 2 || score.Total >= 80:
		return models.DecisionResult{
			Decision: models.DecisionBlock,
			Reason:   h.blockReason(score, direct, similarFailures),
		}
	case score.Total >= 55 || critical >= 1:
		return models.DecisionResult{
			Decision: models.DecisionProceedWithCaution,
			Reason:   h.cautionReason(input, score, direct),
		}
	case score.Total >= 35:
		return models.DecisionResult{
			Decision: models.DecisionConditionalGo,
			Reason:   h.conditionalReason(in, input.Competitors),
		}
	default:
		return models.DecisionResult{
			Decision: models.DecisionGo,
			Reason:   h.goReason(score, direct),
		}
	}
}

func (h *Handler) blockReason(score models.RiskScore, direct, similarFailures int) string {
	var issues []string
	if score.Technical >= 70 {
		issues = append(issues, "critical technical risks")
	}
	if score.Market >= 70 {
		issues = append(issues, "severe market competition")
	}
	if score.Execution >= 70 {
		issues = append(issues, "significant execution challenges")
	}
	if direct >= 5 {
		issues = append(issues, fmt.Sprintf("%d direct competitors already established", direct))
	}
	if similarFailures >= 2 {
		issues = append(issues, fmt.Sprintf("%d similar startups have failed", similarFailures))
	}
	if len(issues) == 0 {
		issues = []string{"multiple high-risk factors"}
	}
	return fmt.Sprintf("High risk detected: %s. Recommend significant pivot, deeper validation, or exploring alternative opportunities before investing more resources.",
		strings.Join(issues, ", "))
}

func (h *Handler) cautionReason(input *Input, score models.RiskScore, direct int) string {
	var concerns []string
	if score.Market >= 50 {
		concerns = append(concerns, fmt.Sprintf("competitive pressure from %d direct players", direct))
	}
	if score.Technical >= 50 {
		concerns = append(concerns, "technical complexity requiring validation")
	}
	if score.Execution >= 50 {
		concerns = append(concerns, "execution challenges at current stage")
	}

	lessons := "validate core assumptions before scaling"
	var learned []string
	for i, f := range input.FailedStartups {
		if i >= 2 {
			break
		}
		if f.Lesson != "" {
			learned = append(learned, f.Lesson)
		}
	}
	if len(learned) > 0 {
		lessons = strings.Join(learned, "; ")
	}

	return fmt.Sprintf("Moderate risk level with notable concerns: %s. %s shows potential but requires careful validation. Key lessons from similar failures: %s.",
		strings.Join(concerns, ", "), input.StartupInput.StartupName, lessons)
}

func (h *Handler) conditionalReason(in models.StartupInput, competitors []models.Competitor) string {
	differentiation := "unique value proposition"
	if len(competitors) > 0 {
		differentiation = fmt.Sprintf("clear differentiation from %s", competitors[0].Name)
	}
	return fmt.Sprintf("Acceptable risk profile with manageable challenges. Key success factors for %s: validate %s model viability with paying customers, establish %s, and build defensible moat before scaling.",
		in.StartupName, in.RevenueModel, differentiation)
}

func (h *Handler) goReason(score models.RiskScore, direct int) string {
	var positives []string
	if score.Technical < 30 {
		positives = append(positives, "low technical risk")
	}
	if score.Market < 30 {
		positives = append(positives, "favorable market conditions")
	}
	if score.Execution < 30 {
		positives = append(positives, "strong execution position")
	}
	if direct < 3 {
		positives = append(positives, "limited direct competition")
	}
	if len(positives) == 0 {
		positives = []string{"favorable overall assessment"}
	}
	return fmt.Sprintf("Favorable risk assessment with %s. Recommend rapid prototyping, user validation, and iterative development. Move quickly to establish market position while conditions are favorable.",
		strings.Join(positives, ", "))
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
