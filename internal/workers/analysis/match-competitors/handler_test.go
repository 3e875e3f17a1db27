// internal/workers/analysis/match-competitors/handler_test.go
package matchcompetitors

import (
	"context"
	"testing"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), catalog.Default(), logger.NewTestLogger(t))
}

func TestExecute_PicksPlatformIndustryAndHidden(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: models.StartupInput{
			StartupName: "PayFlow",
			Platform:    "api",
			Industry:    "fintech",
		},
	})
	require.NoError(t, err)
	// Stripe sits in both the API and fintech tables, so one slot dedupes
	require.Len(t, output.Competitors, 6)

	names := competitorNames(output.Competitors)
	assert.Equal(t, "Twilio", names[0])
	assert.Equal(t, "Stripe", names[1])
	assert.Contains(t, names, "PayPal")
	assert.Contains(t, names, "Excel/Google Sheets")
}

func TestExecute_DeduplicatesByNameFirstWins(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: models.StartupInput{
			Platform: "saas",
			Industry: "productivity",
		},
	})
	require.NoError(t, err)

	names := competitorNames(output.Competitors)
	seen := make(map[string]int)
	for _, n := range names {
		seen[n]++
	}
	// Notion appears in both tables but must only show up once
	assert.Equal(t, 1, seen["Notion"])
	for name, count := range seen {
		assert.Equal(t, 1, count, "duplicate competitor %s", name)
	}
}

func TestExecute_UnknownIndustryStillYieldsMatches(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		StartupInput: models.StartupInput{
			Platform: "web",
			Industry: "other",
		},
	})
	require.NoError(t, err)

	// platform and hidden tables still contribute
	require.Len(t, output.Competitors, 4)
	assert.Equal(t, "Google Suite", output.Competitors[0].Name)
	assert.Equal(t, "Excel/Google Sheets", output.Competitors[2].Name)
}

func TestExecute_Deterministic(t *testing.T) {
	h := newHandler(t)
	input := &Input{StartupInput: models.StartupInput{Platform: "app", Industry: "social"}}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Competitors, second.Competitors)
}

func competitorNames(comps []models.Competitor) []string {
	names := make([]string, 0, len(comps))
	for _, c := range comps {
		names = append(names, c.Name)
	}
	return names
}
