// internal/workers/analysis/run-analysis/handler_test.go
package runanalysis

import (
	"context"
	"testing"
	"time"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"
	"blindspot-workers/internal/orchestrator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) *Handler {
	orch, err := orchestrator.New(catalog.Default(), orchestrator.Lookups{}, time.Second, logger.NewTestLogger(t))
	require.NoError(t, err)
	return NewHandler(LoadConfig(), orch, logger.NewTestLogger(t))
}

func sampleInput() *Input {
	return &Input{
		StartupInput: models.StartupInput{
			StartupName:        "NoteNest",
			Idea:               "shared notes for remote teams",
			Industry:           "productivity",
			Platform:           "web",
			RevenueModel:       "subscription",
			Stage:              "early_users",
			CriticalDependency: "none",
			TargetUsers:        "developers",
		},
	}
}

func TestExecute_DefaultsToCatalogMode(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, models.ModeCatalog, output.Result.Mode)
	assert.Equal(t, 14, output.Result.RiskScore.Total)
	assert.Equal(t, models.DecisionGo, output.Result.Decision.Decision)
	assert.Equal(t, []string{"Fallback Data"}, output.Result.DataSourcesUsed)
}

func TestExecute_LiveModeUsesFallbacksWithoutLookups(t *testing.T) {
	h := newHandler(t)

	input := sampleInput()
	input.Mode = "live"
	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, models.ModeLive, output.Result.Mode)
	assert.Contains(t, output.Result.DataSourcesUsed, "Fallback Data")
	assert.NotEmpty(t, output.Result.Trends)
}

func TestExecute_UnknownMode(t *testing.T) {
	h := newHandler(t)

	input := sampleInput()
	input.Mode = "psychic"
	output, err := h.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown analysis mode")
	assert.Nil(t, output)
}

func TestExecute_ValidationErrorPropagates(t *testing.T) {
	h := newHandler(t)

	input := sampleInput()
	input.Platform = "mainframe"
	_, err := h.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INPUT_VALIDATION_FAILED")
}
