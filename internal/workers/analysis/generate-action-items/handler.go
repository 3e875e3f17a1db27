// internal/workers/analysis/generate-action-items/handler.go
package generateactionitems

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-action-items"

	maxCatalogActions  = 8
	maxEnrichedActions = 12
)

var priorityRank = map[string]int{"high": 0, "medium": 1, "low": 2}

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
		h.failJob(client, job, "ACTION_GENERATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	var actions []models.ActionItem
	if input.Mode == models.ModeLive {
		actions = h.enrichedActions(input)
	} else {
		actions = h.catalogActions(input)
	}

	h.logger.Info("action items generated", map[string]interface{}{
		"startupName": input.StartupInput.StartupName,
		"mode":        string(input.Mode),
		"count":       len(actions),
	})

	return &Output{ActionItems: actions}, nil
}

// catalogActions builds the static checklist, then orders it by
// priority. The stable sort keeps generation order within a priority.
func (h *Handler) catalogActions(input *Input) []models.ActionItem {
	in := input.StartupInput
	score := input.RiskScore

	var actions []models.ActionItem
	add := func(text, priority, category string) {
		actions = append(actions, models.ActionItem{
			ID:       fmt.Sprintf("action%d", len(actions)+1),
			Text:     text,
			Priority: priority,
			Category: category,
		})
	}

	if score.Market >= 50 || in.RevenueModel == models.RevenueFree {
		add("Test willingness to pay with landing page + payment intent", "high", "validate")
	}

	if in.Stage == models.StageIdea {
		add("Interview 20 potential users about this specific pain point", "high", "validate")
		add("Avoid building any premium features until core is validated", "high", "avoid")
	}

	if in.CriticalDependency == models.DependencyAPI {
		add("Create fallback plan for API dependency - identify 2 alternatives", "high", "validate")
	}

	if in.TargetUsers == "consumers" {
		add("Run small paid ad experiment (₹5k-10k) to test acquisition cost", "high", "test")
		add("Measure 7-day and 30-day retention from first users", "high", "measure")
	}

	if in.Platform == models.PlatformApp {
		add("Build web MVP first to validate before mobile investment", "medium", "avoid")
	}

	if in.RevenueModel == models.RevenueSubscription {
		add("Pre-sell annual plans to validate commitment level", "medium", "test")
	}

	if in.Industry == "marketplace" {
		add("Manually match first 50 transactions to understand both sides", "high", "validate")
		add("Avoid building automated matching until manual process works", "medium", "avoid")
	}

	add(`Define your "kill metric" - what number would make you stop?`, "medium", "measure")
	add("Set 4-week validation deadline before any major build", "medium", "test")

	if in.CriticalDependency == models.DependencyPlatform {
		add("Review platform ToS for business model compatibility", "high", "validate")
	}

	if in.Industry == "fintech" || in.Industry == "healthtech" {
		add("Map compliance requirements before building features", "high", "validate")
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return priorityRank[actions[i].Priority] < priorityRank[actions[j].Priority]
	})
	if len(actions) > maxCatalogActions {
		actions = actions[:maxCatalogActions]
	}
	return actions
}

// enrichedActions turns the gathered evidence into a timeboxed plan.
func (h *Handler) enrichedActions(input *Input) []models.ActionItem {
	in := input.StartupInput
	score := input.RiskScore

	var actions []models.ActionItem
	add := func(text, priority, category, timeframe string) {
		actions = append(actions, models.ActionItem{
			ID:        fmt.Sprintf("action-%d", len(actions)+1),
			Text:      text,
			Priority:  priority,
			Category:  category,
			Timeframe: timeframe,
			Completed: false,
		})
	}

	highAssumptions := 0
	for _, a := range input.Assumptions {
		if a.RiskLevel != "high" || highAssumptions >= 2 {
			continue
		}
		highAssumptions++
		add(fmt.Sprintf("Validate assumption: %q through 10+ user interviews", a.Text), "high", "validate", "Week 1-2")
	}

	if len(input.Competitors) > 0 {
		add(fmt.Sprintf("Deep-dive analysis: Study %s's user reviews, complaints, and churned customers", input.Competitors[0].Name),
			"high", "validate", "Week 1")
	}

	direct := 0
	for _, c := range input.Competitors {
		if c.Type == "direct" {
			direct++
		}
	}
	if direct >= 3 {
		add("Create competitive positioning matrix showing clear differentiation", "medium", "validate", "Week 2")
	}

	if score.Technical >= 50 {
		add("Build technical proof-of-concept for riskiest component before full development", "high", "test", "Week 2-3")
	}

	if score.Market >= 50 {
		add("Conduct 20+ user interviews to validate problem urgency and willingness to pay", "high", "validate", "Week 1-2")
		add("Create landing page to test messaging and measure conversion rates", "medium", "test", "Week 2")
	}

	if score.Execution >= 50 {
		add("Define MVP scope with maximum 3 core features - cut everything else", "high", "avoid", "Week 1")
	}

	switch in.Stage {
	case models.StageIdea:
		add("Talk to 30+ potential users before writing any code", "high", "validate", "Week 1-3")
		add("Avoid: Building features without validated user demand", "high", "avoid", "Ongoing")
	case models.StageMVP:
		add("Get 5 paying customers or signed LOIs before adding features", "high", "validate", "Week 2-4")
	case models.StageEarlyUsers:
		add("Measure and optimize key metrics: activation, retention, referral rates", "high", "measure", "Week 1-2")
	}

	switch in.RevenueModel {
	case models.RevenueFree:
		add(`Define clear monetization path before launch - avoid "we'll figure it out later"`, "high", "validate", "Week 1")
	case models.RevenueFreemium:
		add("Test price points and premium features with target users before building", "medium", "test", "Week 2-3")
	case models.RevenueSubscription:
		add("Validate willingness to pay monthly with 10+ target customers", "medium", "validate", "Week 2")
	case models.RevenueCommission:
		add("Model unit economics at different transaction volumes", "medium", "measure", "Week 2")
	}

	if in.CriticalDependency != models.DependencyNone && in.CriticalDependency != "" {
		add(fmt.Sprintf("Identify 2-3 backup alternatives for %s dependency", in.CriticalDependency),
			"medium", "avoid", "Week 2")
		switch in.CriticalDependency {
		case models.DependencyAPI:
			add("Review API terms of service and pricing - model costs at scale", "medium", "validate", "Week 1")
		case models.DependencyRegulation:
			add("Consult with regulatory expert before significant investment", "high", "validate", "Week 1-2")
		}
	}

	if len(input.FailedStartups) > 0 {
		f := input.FailedStartups[0]
		add(fmt.Sprintf("Learn from %s's failure: %s", f.Name, f.Lesson), "medium", "avoid", "Week 1")
	}

	add("Set up weekly metrics review to track progress against key assumptions", "low", "measure", "Week 2")

	sort.SliceStable(actions, func(i, j int) bool {
		return priorityRank[actions[i].Priority] < priorityRank[actions[j].Priority]
	})
	if len(actions) > maxEnrichedActions {
		actions = actions[:maxEnrichedActions]
	}
	return actions
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
