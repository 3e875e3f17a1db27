// internal/workers/analysis/generate-action-items/handler_test.go
package generateactionitems

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

func TestCatalog_UniversalActionsAlwaysPresent(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: models.StartupInput{
			Industry:           "productivity",
			Platform:           "web",
			RevenueModel:       "one_time",
			Stage:              "early_users",
			CriticalDependency: "none",
			TargetUsers:        "developers",
		},
		Mode:      models.ModeCatalog,
		RiskScore: models.RiskScore{Market: 20},
	})
	require.NoError(t, err)

	texts := actionTexts(output.ActionItems)
	assert.Contains(t, texts, `Define your "kill metric" - what number would make you stop?`)
	assert.Contains(t, texts, "Set 4-week validation deadline before any major build")
}

func TestCatalog_HighPriorityActionsSortFirst(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: models.StartupInput{
			Industry:           "fintech",
			Platform:           "app",
			RevenueModel:       "free",
			Stage:              "idea",
			CriticalDependency: "api",
			TargetUsers:        "consumers",
		},
		Mode:      models.ModeCatalog,
		RiskScore: models.RiskScore{Market: 60},
	})
	require.NoError(t, err)
	require.Len(t, output.ActionItems, 8)

	lastRank := -1
	for _, a := range output.ActionItems {
		rank := priorityRank[a.Priority]
		assert.GreaterOrEqual(t, rank, lastRank)
		lastRank = rank
	}
	// seven high-priority items for this profile, then the cap leaves
	// room for a single medium one
	for i, a := range output.ActionItems {
		if i < 7 {
			assert.Equal(t, "high", a.Priority)
		} else {
			assert.Equal(t, "medium", a.Priority)
		}
	}
}

func TestCatalog_IDsFollowGenerationOrder(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: models.StartupInput{
			Industry:           "productivity",
			Platform:           "web",
			RevenueModel:       "subscription",
			Stage:              "early_users",
			CriticalDependency: "none",
			TargetUsers:        "developers",
		},
		Mode: models.ModeCatalog,
	})
	require.NoError(t, err)

	// subscription pre-sell plus the two universal actions, all medium
	require.Len(t, output.ActionItems, 3)
	assert.Equal(t, "action1", output.ActionItems[0].ID)
	assert.Equal(t, "Pre-sell annual plans to validate commitment level", output.ActionItems[0].Text)
}

func TestEnriched_HighAssumptionsDriveInterviewActions(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: models.StartupInput{
			StartupName:        "PayFlow",
			Industry:           "fintech",
			Platform:           "api",
			RevenueModel:       "subscription",
			Stage:              "mvp",
			CriticalDependency: "none",
			TargetUsers:        "smb",
		},
		Mode:      models.ModeLive,
		RiskScore: models.RiskScore{Technical: 30, Market: 30, Execution: 30, Total: 30},
		Assumptions: []models.Assumption{
			{ID: "asm-1", Text: "first belief", RiskLevel: "high"},
			{ID: "asm-2", Text: "second belief", RiskLevel: "high"},
			{ID: "asm-3", Text: "third belief", RiskLevel: "high"},
		},
	})
	require.NoError(t, err)

	interviews := 0
	for _, a := range output.ActionItems {
		if a.Category == "validate" && a.Timeframe == "Week 1-2" {
			interviews++
		}
	}
	// only the first two high-risk assumptions produce actions
	assert.Equal(t, 2, interviews)
}

func TestEnriched_DependencyAndFailureActions(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: models.StartupInput{
			StartupName:        "RegCo",
			Industry:           "fintech",
			Platform:           "web",
			RevenueModel:       "commission",
			Stage:              "mvp",
			CriticalDependency: "regulation",
			TargetUsers:        "smb",
		},
		Mode:      models.ModeLive,
		RiskScore: models.RiskScore{Technical: 40, Market: 40, Execution: 40, Total: 40},
		FailedStartups: []models.FailedStartup{
			{Name: "GoneCo", Lesson: "Maintain healthy cash runway and focus on capital efficiency"},
		},
	})
	require.NoError(t, err)

	texts := actionTexts(output.ActionItems)
	assert.Contains(t, texts, "Identify 2-3 backup alternatives for regulation dependency")
	assert.Contains(t, texts, "Consult with regulatory expert before significant investment")
	assert.Contains(t, texts, "Learn from GoneCo's failure: Maintain healthy cash runway and focus on capital efficiency")
}

func TestEnriched_CappedAtTwelveAndSorted(t *testing.T) {
	h := newHandler(t)

	competitors := []models.Competitor{
		{Name: "A", Type: "direct", Threat: "high"},
		{Name: "B", Type: "direct", Threat: "high"},
		{Name: "C", Type: "direct", Threat: "medium"},
	}

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: models.StartupInput{
			StartupName:        "MaxCo",
			Industry:           "marketplace",
			Platform:           "app",
			RevenueModel:       "free",
			Stage:              "idea",
			CriticalDependency: "api",
			TargetUsers:        "consumers",
		},
		Mode:      models.ModeLive,
		RiskScore: models.RiskScore{Technical: 60, Market: 70, Execution: 65, Total: 65},
		Assumptions: []models.Assumption{
			{Text: "belief one", RiskLevel: "high"},
			{Text: "belief two", RiskLevel: "high"},
		},
		Competitors: competitors,
		FailedStartups: []models.FailedStartup{
			{Name: "BustCo", Lesson: "Find an unfair advantage or niche before going broad"},
		},
	})
	require.NoError(t, err)

	assert.Len(t, output.ActionItems, 12)
	lastRank := -1
	for _, a := range output.ActionItems {
		rank := priorityRank[a.Priority]
		assert.GreaterOrEqual(t, rank, lastRank)
		lastRank = rank
		assert.False(t, a.Completed)
		assert.NotEmpty(t, a.Timeframe)
	}
}

func actionTexts(actions []models.ActionItem) []string {
	texts := make([]string, 0, len(actions))
	for _, a := range actions {
		texts = append(texts, a.Text)
	}
	return texts
}
