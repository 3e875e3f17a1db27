// internal/workers/analysis/extract-assumptions/handler_test.go
package extractassumptions

import (
	"context"
	"testing"

	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func ideaStageInput() models.StartupInput {
	return models.StartupInput{
		StartupName:        "NoteNest",
		Idea:               "shared notes for remote teams",
		Industry:           "productivity",
		Platform:           "web",
		RevenueModel:       "free",
		Stage:              "idea",
		CriticalDependency: "none",
		TargetUsers:        "consumers",
	}
}

func TestCatalog_IdeaStageProducesTwoHighMarketAssumptions(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: ideaStageInput(),
		Mode:         models.ModeCatalog,
	})
	require.NoError(t, err)

	highMarket := 0
	for _, a := range output.Assumptions {
		if a.Category == "market" && a.Severity == "high" {
			highMarket++
		}
	}
	// the free revenue model plus the two idea-stage beliefs
	assert.GreaterOrEqual(t, highMarket, 3)

	texts := assumptionTexts(output.Assumptions)
	assert.Contains(t, texts, "Problem-solution fit is assumed without validation")
	assert.Contains(t, texts, "Target users actually experience this pain point frequently")
}

func TestCatalog_UniversalAssumptionsAlwaysPresent(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: ideaStageInput(),
		Mode:         models.ModeCatalog,
	})
	require.NoError(t, err)

	texts := assumptionTexts(output.Assumptions)
	assert.Contains(t, texts, "Team has the capability to execute on the technical vision")
	assert.Contains(t, texts, "Market timing is right for this solution")
}

func TestCatalog_IDsAreSequential(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: ideaStageInput(),
		Mode:         models.ModeCatalog,
	})
	require.NoError(t, err)

	require.NotEmpty(t, output.Assumptions)
	assert.Equal(t, "a1", output.Assumptions[0].ID)
	assert.Equal(t, "a2", output.Assumptions[1].ID)
}

func TestCatalog_Deterministic(t *testing.T) {
	h := newHandler(t)
	input := &Input{StartupInput: ideaStageInput(), Mode: models.ModeCatalog}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Assumptions, second.Assumptions)
}

func TestEnriched_EightAssumptionsWithDependency(t *testing.T) {
	h := newHandler(t)

	input := &Input{
		StartupInput: models.StartupInput{
			StartupName:        "PayFlow",
			Idea:               "automated invoicing",
			Industry:           "fintech",
			Platform:           "api",
			RevenueModel:       "subscription",
			Stage:              "mvp",
			CriticalDependency: "api",
			TargetUsers:        "smb",
		},
		Mode: models.ModeLive,
		Competitors: []models.Competitor{
			{Name: "Stripe", Type: "direct", Threat: "high"},
			{Name: "Square", Type: "direct", Threat: "medium"},
		},
		Trends: []models.MarketTrend{
			{Keyword: "fintech", Interest: 60, Trend: "rising"},
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.Assumptions, 8)

	assert.Equal(t, "asm-1", output.Assumptions[0].ID)
	assert.Equal(t, "asm-8", output.Assumptions[7].ID)
	for _, a := range output.Assumptions {
		assert.False(t, a.Validated)
		assert.Equal(t, a.Severity, a.RiskLevel)
		assert.NotEmpty(t, a.Source)
	}

	// two direct competitors means medium demand severity
	assert.Equal(t, "medium", output.Assumptions[0].Severity)
	assert.Contains(t, output.Assumptions[0].Text, "Small and medium businesses")

	// top competitor is high threat, so differentiation is high severity
	diff := output.Assumptions[3]
	assert.Contains(t, diff.Text, "Stripe")
	assert.Equal(t, "high", diff.Severity)

	// rising trend outnumbers declining, so timing severity is low
	timing := output.Assumptions[6]
	assert.Equal(t, "Trend Analysis", timing.Source)
	assert.Equal(t, "low", timing.Severity)
}

func TestEnriched_NoDependencySkipsDependencyAssumption(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: ideaStageInput(),
		Mode:         models.ModeLive,
	})
	require.NoError(t, err)

	for _, a := range output.Assumptions {
		assert.NotEqual(t, "Dependency Analysis", a.Source)
	}
	// no competitors and no dependency drops two of the eight
	assert.Len(t, output.Assumptions, 6)
}

func TestEnriched_DecliningTrendsRaiseTimingSeverity(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: ideaStageInput(),
		Mode:         models.ModeLive,
		Trends: []models.MarketTrend{
			{Keyword: "notes", Trend: "declining"},
			{Keyword: "collaboration", Trend: "declining"},
			{Keyword: "remote", Trend: "rising"},
		},
	})
	require.NoError(t, err)

	var timing *models.Assumption
	for i := range output.Assumptions {
		if output.Assumptions[i].Source == "Trend Analysis" {
			timing = &output.Assumptions[i]
		}
	}
	require.NotNil(t, timing)
	assert.Equal(t, "high", timing.Severity)
}

func assumptionTexts(assumptions []models.Assumption) []string {
	texts := make([]string, 0, len(assumptions))
	for _, a := range assumptions {
		texts = append(texts, a.Text)
	}
	return texts
}
