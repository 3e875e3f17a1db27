// internal/workers/analysis/extract-assumptions/handler.go
package extractassumptions

import (
	"context"
	"encoding/json"
	"fmt"

	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "extract-assumptions"
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
		h.failJob(client, job, "ASSUMPTION_EXTRACTION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	var assumptions []models.Assumption
	if input.Mode == models.ModeLive {
		assumptions = h.enrichedAssumptions(input)
	} else {
		assumptions = h.catalogAssumptions(input.StartupInput)
	}

	h.logger.Info("assumptions extracted", map[string]interface{}{
		"startupName": input.StartupInput.StartupName,
		"mode":        string(input.Mode),
		"count":       len(assumptions),
	})

	return &Output{Assumptions: assumptions}, nil
}

// catalogAssumptions walks the static rule table. Order is fixed so the
// same input always yields the same ids.
func (h *Handler) catalogAssumptions(in models.StartupInput) []models.Assumption {
	var out []models.Assumption
	add := func(text, category, severity string) {
		out = append(out, models.Assumption{
			ID:       fmt.Sprintf("a%d", len(out)+1),
			Text:     text,
			Category: category,
			Severity: severity,
		})
	}

	switch in.RevenueModel {
	case models.RevenueFree:
		add("Users will eventually convert to paid without a clear monetization path", "market", "high")
	case models.RevenueSubscription:
		add("Users will pay recurring fees for this solution", "market", "medium")
	case models.RevenueCommission:
		add("Transaction volume will be sufficient to sustain commission-based revenue", "market", "medium")
	}

	switch in.Platform {
	case models.PlatformApp:
		add("Users will download and retain a dedicated mobile application", "execution", "medium")
	case models.PlatformSaaS:
		add("Enterprise customers will integrate this into their workflow", "market", "medium")
	case models.PlatformAPI:
		add("Developers will adopt and integrate this API into their products", "technical", "high")
	}

	switch in.Stage {
	case models.StageIdea:
		add("Problem-solution fit is assumed without validation", "market", "high")
		add("Target users actually experience this pain point frequently", "market", "high")
	case models.StageMVP:
		add("MVP features are sufficient for user adoption", "execution", "medium")
	case models.StageEarlyUsers:
		add("Early adopters represent the broader market behavior", "market", "medium")
	}

	switch in.CriticalDependency {
	case models.DependencyAPI:
		add("External API will remain stable, affordable, and accessible", "technical", "high")
		add("API provider won't become a competitor or change terms drastically", "technical", "medium")
	case models.DependencyPlatform:
		add("Platform policies will remain favorable for your business model", "execution", "high")
	case models.DependencyRegulation:
		add("Regulatory environment will remain stable or become more favorable", "execution", "high")
	}

	switch in.TargetUsers {
	case "consumers":
		add("Consumer acquisition costs will be sustainable", "market", "medium")
	case "smb":
		add("SMBs have budget and decision-making speed for this solution", "market", "medium")
	case "enterprise":
		add("Enterprise sales cycles and procurement processes are manageable", "execution", "high")
	}

	switch in.Industry {
	case "fintech":
		add("Trust and security requirements can be met cost-effectively", "technical", "high")
	case "healthtech":
		add("Healthcare compliance (HIPAA, etc.) is achievable at current scale", "execution", "high")
	case "edtech":
		add("Educational institutions will adopt new technology quickly", "market", "medium")
	}

	add("Team has the capability to execute on the technical vision", "execution", "low")
	add("Market timing is right for this solution", "market", "medium")

	return out
}

// enrichedAssumptions produces the eight live-mode assumptions, with
// severities adjusted by competitor and trend evidence.
func (h *Handler) enrichedAssumptions(input *Input) []models.Assumption {
	in := input.StartupInput

	directCount := 0
	for _, c := range input.Competitors {
		if c.Type == "direct" {
			directCount++
		}
	}

	var out []models.Assumption
	add := func(text, category, severity, source string) {
		out = append(out, models.Assumption{
			ID:        fmt.Sprintf("asm-%d", len(out)+1),
			Text:      text,
			Category:  category,
			Severity:  severity,
			RiskLevel: severity,
			Source:    source,
			Validated: false,
		})
	}

	demandSeverity := "low"
	if directCount > 3 {
		demandSeverity = "high"
	} else if directCount > 1 {
		demandSeverity = "medium"
	}
	add(fmt.Sprintf("%s are actively seeking solutions like %s and will switch from existing alternatives",
		formatTargetUsers(in.TargetUsers), in.StartupName),
		"market", demandSeverity, "Competitive Analysis")

	revenueText, revenueSeverity := revenueAssumption(in.RevenueModel)
	add(revenueText, "market", revenueSeverity, "Business Model Analysis")

	add(platformAssumption(in.Platform), "execution", "medium", "Platform Analysis")

	if len(input.Competitors) > 0 {
		top := input.Competitors[0]
		severity := "medium"
		if top.Threat == "high" {
			severity = "high"
		}
		add(fmt.Sprintf("%s can meaningfully differentiate from %s and capture market share",
			in.StartupName, top.Name),
			"market", severity, "Competitive Analysis")
	}

	if in.CriticalDependency != models.DependencyNone && in.CriticalDependency != "" {
		if text, ok := dependencyAssumptions[in.CriticalDependency]; ok {
			add(text, "technical", "high", "Dependency Analysis")
		}
	}

	stageText, stageSeverity := stageAssumption(in.Stage)
	add(stageText, "execution", stageSeverity, "Stage Analysis")

	rising, declining := 0, 0
	for _, t := range input.Trends {
		switch t.Trend {
		case "rising":
			rising++
		case "declining":
			declining++
		}
	}
	timingSeverity := "medium"
	if declining > rising {
		timingSeverity = "high"
	} else if rising > declining {
		timingSeverity = "low"
	}
	add(fmt.Sprintf("Market timing is favorable for %s solutions right now", in.Industry),
		"market", timingSeverity, "Trend Analysis")

	execSeverity := "medium"
	if in.Stage == models.StageIdea {
		execSeverity = "high"
	}
	add("The founding team can execute on this vision and adapt to market feedback",
		"execution", execSeverity, "Execution Analysis")

	return out
}

var dependencyAssumptions = map[string]string{
	models.DependencyAPI:        "Third-party API (e.g., OpenAI, Stripe) will remain accessible, stable, and affordably priced",
	models.DependencyPlatform:   "Platform (iOS/Android/Shopify) policies will remain favorable and not block distribution",
	models.DependencyRegulation: "Regulatory environment will remain stable or become more favorable",
}

func revenueAssumption(revenueModel string) (string, string) {
	switch revenueModel {
	case models.RevenueFree:
		return "Users can be monetized later through ads, data, or premium features", "high"
	case models.RevenueFreemium:
		return "Free users will convert to paid at sustainable rates (typically 2-5%)", "medium"
	case models.RevenueCommission:
		return "Transaction volume will be sufficient to generate meaningful revenue", "medium"
	case models.RevenueOneTime:
		return "One-time purchase price justifies customer acquisition cost", "low"
	default:
		return "Users will pay recurring fees and maintain low churn rates", "medium"
	}
}

func platformAssumption(platform string) string {
	switch platform {
	case models.PlatformApp:
		return "Users will download, install, and regularly engage with a mobile app"
	case models.PlatformSaaS:
		return "Businesses will integrate this into their workflow and pay monthly fees"
	case models.PlatformAPI:
		return "Developers will adopt this API and build it into their products"
	default:
		return "Users prefer web-based solutions and will access regularly via browser"
	}
}

func stageAssumption(stage string) (string, string) {
	switch stage {
	case models.StageMVP:
		return "Current MVP features address the most critical user needs and pain points", "medium"
	case models.StageEarlyUsers:
		return "Early users are representative of the broader target market", "low"
	default:
		return "The core problem hypothesis is validated and users urgently need a solution", "high"
	}
}

func formatTargetUsers(targetUsers string) string {
	switch targetUsers {
	case "consumers":
		return "Consumers"
	case "smb":
		return "Small and medium businesses"
	case "enterprise":
		return "Enterprise companies"
	case "developers":
		return "Developers"
	case "students":
		return "Students"
	default:
		return "Target users"
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
