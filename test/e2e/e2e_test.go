// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"
	"blindspot-workers/internal/orchestrator"

	runanalysis "blindspot-workers/internal/workers/analysis/run-analysis"
	checktechnicalrisks "blindspot-workers/internal/workers/enrichment/check-technical-risks"
	fetchindustrynews "blindspot-workers/internal/workers/enrichment/fetch-industry-news"
	fetchmarkettrends "blindspot-workers/internal/workers/enrichment/fetch-market-trends"
	searchcompetitors "blindspot-workers/internal/workers/enrichment/search-competitors"
	searchfailedstartups "blindspot-workers/internal/workers/enrichment/search-failed-startups"
	storeanalysis "blindspot-workers/internal/workers/report/store-analysis"
)

// These tests run the whole evaluation pipeline in-process, without a
// Zeebe broker. External lookups are replaced with httptest fakes.

func catalogOrchestrator(t *testing.T) *orchestrator.Orchestrator {
	o, err := orchestrator.New(catalog.Default(), orchestrator.Lookups{}, 2*time.Second, logger.NewTestLogger(t))
	require.NoError(t, err)
	return o
}

func fintechAPIStartup() models.StartupInput {
	return models.StartupInput{
		StartupName:        "PayFlow",
		Idea:               "automated invoicing for freelancers",
		Industry:           "fintech",
		Platform:           "api",
		RevenueModel:       "free",
		Stage:              "idea",
		CriticalDependency: "api",
		TargetUsers:        "enterprise",
	}
}

func productivityWebStartup() models.StartupInput {
	return models.StartupInput{
		StartupName:        "NoteNest",
		Idea:               "shared notes for remote teams",
		Industry:           "productivity",
		Platform:           "web",
		RevenueModel:       "subscription",
		Stage:              "early_users",
		CriticalDependency: "none",
		TargetUsers:        "developers",
	}
}

func TestPipeline_CatalogBlockVerdict(t *testing.T) {
	o := catalogOrchestrator(t)

	result, err := o.RunAnalysis(context.Background(), fintechAPIStartup())
	require.NoError(t, err)

	// full report shape
	assert.Equal(t, models.ModeCatalog, result.Mode)
	assert.Equal(t, 70, result.RiskScore.Technical)
	assert.Equal(t, 60, result.RiskScore.Market)
	assert.Equal(t, 85, result.RiskScore.Execution)
	assert.Equal(t, 71, result.RiskScore.Total)
	assert.Equal(t, "High", result.RiskScore.Level)
	assert.Equal(t, models.DecisionBlock, result.Decision.Decision)
	assert.Equal(t, []string{"Fallback Data"}, result.DataSourcesUsed)

	assert.NotEmpty(t, result.Assumptions)
	assert.NotEmpty(t, result.Competitors)
	assert.NotEmpty(t, result.FailedStartups)
	assert.NotEmpty(t, result.ActionItems)

	_, err = time.Parse(time.RFC3339, result.AnalyzedAt)
	assert.NoError(t, err)
}

func TestPipeline_CatalogGoVerdict(t *testing.T) {
	o := catalogOrchestrator(t)

	result, err := o.RunAnalysis(context.Background(), productivityWebStartup())
	require.NoError(t, err)

	assert.Equal(t, 14, result.RiskScore.Total)
	assert.Equal(t, "Low", result.RiskScore.Level)
	assert.Equal(t, models.DecisionGo, result.Decision.Decision)
	assert.Empty(t, result.Decision.Conditions)
}

func TestPipeline_CatalogNeverConditionalGo(t *testing.T) {
	o := catalogOrchestrator(t)

	// sweep a range of profiles; the catalog ladder has no conditional branch
	industries := []string{"fintech", "healthtech", "productivity", "ecommerce", "other"}
	stages := []string{"idea", "mvp", "early_users"}
	for _, industry := range industries {
		for _, stage := range stages {
			input := productivityWebStartup()
			input.Industry = industry
			input.Stage = stage
			result, err := o.RunAnalysis(context.Background(), input)
			require.NoError(t, err)
			assert.NotEqual(t, models.DecisionConditionalGo, result.Decision.Decision,
				"industry=%s stage=%s", industry, stage)
		}
	}
}

func TestPipeline_CaseAndWhitespaceNormalized(t *testing.T) {
	o := catalogOrchestrator(t)

	input := fintechAPIStartup()
	input.Industry = "  FinTech "
	input.Platform = "API"
	result, err := o.RunAnalysis(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "fintech", result.Input.Industry)
	assert.Equal(t, 71, result.RiskScore.Total)
}

func TestPipeline_LiveModeWithFakes(t *testing.T) {
	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Abstract": "Invoicera is an established invoicing platform for freelancers",
			"AbstractURL": "https://invoicera.com",
			"Heading": "Invoicera",
			"RelatedTopics": [
				{"Text": "FreshBooks - automated invoicing software for small teams", "FirstURL": "https://freshbooks.com"},
				{"Text": "Zoho Invoice is an invoicing tool", "FirstURL": "https://zoho.com"}
			]
		}`))
	}))
	defer ddg.Close()

	hn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits": [
			{"objectID": "42", "title": "Invoicely automated invoicing startup failed after funding dried up", "created_at": "2023-06-01T10:00:00Z"}
		]}`))
	}))
	defer hn.Close()

	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [{"full_name": "stripe/stripe-go", "stargazers_count": 2100, "open_issues_count": 12, "updated_at": "2024-05-30T00:00:00Z"}]}`))
	}))
	defer github.Close()

	log := logger.NewTestLogger(t)
	cat := catalog.Default()

	compConfig := searchcompetitors.LoadConfig()
	compConfig.BaseURL = ddg.URL
	failConfig := searchfailedstartups.LoadConfig()
	failConfig.BaseURL = hn.URL
	trendConfig := fetchmarkettrends.LoadConfig()
	trendConfig.BaseURL = ddg.URL
	techConfig := checktechnicalrisks.LoadConfig()
	techConfig.BaseURL = github.URL
	newsConfig := fetchindustrynews.LoadConfig()
	newsConfig.BaseURL = hn.URL

	orch, err := orchestrator.New(cat, orchestrator.Lookups{
		Competitors:    searchcompetitors.NewHandler(compConfig, nil, cat, log),
		Failures:       searchfailedstartups.NewHandler(failConfig, cat, log),
		Trends:         fetchmarkettrends.NewHandler(trendConfig, log),
		TechnicalRisks: checktechnicalrisks.NewHandler(techConfig, cat, log),
		News:           fetchindustrynews.NewHandler(newsConfig, log),
	}, 2*time.Second, log)
	require.NoError(t, err)

	// drive it through the run-analysis worker, the way a process would
	handler := runanalysis.NewHandler(runanalysis.LoadConfig(), orch, log)
	output, err := handler.Execute(context.Background(), &runanalysis.Input{
		StartupInput: fintechAPIStartup(),
		Mode:         "live",
	})
	require.NoError(t, err)

	result := output.Result
	assert.Equal(t, models.ModeLive, result.Mode)
	assert.Contains(t, result.DataSourcesUsed, "DuckDuckGo Search API")
	assert.Contains(t, result.DataSourcesUsed, "Hacker News API")
	assert.Contains(t, result.DataSourcesUsed, "Trend Analysis")
	assert.Contains(t, result.DataSourcesUsed, "GitHub API")
	assert.Contains(t, result.DataSourcesUsed, "News Sentiment Analysis")

	assert.Len(t, result.Assumptions, 8)
	require.NotEmpty(t, result.Competitors)
	assert.Equal(t, "Invoicera", result.Competitors[0].Name)
	assert.NotEmpty(t, result.FailedStartups)
	assert.NotEmpty(t, result.Trends)
	assert.NotEmpty(t, result.ActionItems)
}

func TestPipeline_ReportStoredAfterAnalysis(t *testing.T) {
	o := catalogOrchestrator(t)

	result, err := o.RunAnalysis(context.Background(), fintechAPIStartup())
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO analyses`).
		WithArgs(
			sqlmock.AnyArg(),
			"user-e2e",
			"PayFlow",
			"catalog",
			"BLOCK",
			71,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := storeanalysis.NewHandler(storeanalysis.LoadConfig(), db, cache, nil, logger.NewTestLogger(t))
	output, err := store.Execute(context.Background(), &storeanalysis.Input{
		UserID: "user-e2e",
		Result: *result,
	})
	require.NoError(t, err)
	assert.True(t, output.Stored)

	cached, err := mr.Get("report:last:user-e2e")
	require.NoError(t, err)
	assert.Contains(t, cached, "BLOCK")

	assert.NoError(t, mock.ExpectationsWereMet())
}
