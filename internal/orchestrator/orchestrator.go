// internal/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/common/metrics"
	"blindspot-workers/internal/models"
	calculateriskscore "blindspot-workers/internal/workers/analysis/calculate-risk-score"
	extractassumptions "blindspot-workers/internal/workers/analysis/extract-assumptions"
	generateactionitems "blindspot-workers/internal/workers/analysis/generate-action-items"
	makedecision "blindspot-workers/internal/workers/analysis/make-decision"
	matchcompetitors "blindspot-workers/internal/workers/analysis/match-competitors"
	matchfailurepatterns "blindspot-workers/internal/workers/analysis/match-failure-patterns"
	validatestartupinput "blindspot-workers/internal/workers/analysis/validate-startup-input"
	checktechnicalrisks "blindspot-workers/internal/workers/enrichment/check-technical-risks"
	fetchindustrynews "blindspot-workers/internal/workers/enrichment/fetch-industry-news"
	fetchmarkettrends "blindspot-workers/internal/workers/enrichment/fetch-market-trends"
	searchcompetitors "blindspot-workers/internal/workers/enrichment/search-competitors"
	searchfailedstartups "blindspot-workers/internal/workers/enrichment/search-failed-startups"
)

// Lookups bundles the external enrichment workers. A nil entry means
// that source is unavailable and its fallback data is used instead.
type Lookups struct {
	Competitors    *searchcompetitors.Handler
	Failures       *searchfailedstartups.Handler
	Trends         *fetchmarkettrends.Handler
	TechnicalRisks *checktechnicalrisks.Handler
	News           *fetchindustrynews.Handler
}

// Orchestrator runs the full evaluation pipeline in-process, without a
// workflow engine. The worker handlers stay the single source of truth
// for each step.
type Orchestrator struct {
	catalog       *catalog.Catalog
	lookups       Lookups
	lookupTimeout time.Duration
	logger        logger.Logger

	validate    *validatestartupinput.Handler
	assumptions *extractassumptions.Handler
	risk        *calculateriskscore.Handler
	competitors *matchcompetitors.Handler
	failures    *matchfailurepatterns.Handler
	decision    *makedecision.Handler
	actions     *generateactionitems.Handler
}

func New(cat *catalog.Catalog, lookups Lookups, lookupTimeout time.Duration, log logger.Logger) (*Orchestrator, error) {
	validate, err := validatestartupinput.NewHandler(validatestartupinput.LoadConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("create validation handler: %w", err)
	}

	return &Orchestrator{
		catalog:       cat,
		lookups:       lookups,
		lookupTimeout: lookupTimeout,
		logger:        log.WithFields(map[string]interface{}{"component": "orchestrator"}),
		validate:      validate,
		assumptions:   extractassumptions.NewHandler(extractassumptions.LoadConfig(), log),
		risk:          calculateriskscore.NewHandler(calculateriskscore.LoadConfig(), log),
		competitors:   matchcompetitors.NewHandler(matchcompetitors.LoadConfig(), cat, log),
		failures:      matchfailurepatterns.NewHandler(matchfailurepatterns.LoadConfig(), cat, log),
		decision:      makedecision.NewHandler(makedecision.LoadConfig(), log),
		actions:       generateactionitems.NewHandler(generateactionitems.LoadConfig(), log),
	}, nil
}

// RunAnalysis evaluates the idea against the static catalog only. The
// sequence mirrors the BPMN process for the base analysis.
func (o *Orchestrator) RunAnalysis(ctx context.Context, input models.StartupInput) (*models.AnalysisResult, error) {
	validated, err := o.validate.Execute(ctx, &validatestartupinput.Input{StartupInput: input})
	if err != nil {
		return nil, err
	}
	in := validated.StartupInput

	assumptions, err := o.assumptions.Execute(ctx, &extractassumptions.Input{
		StartupInput: in,
		Mode:         models.ModeCatalog,
	})
	if err != nil {
		return nil, err
	}

	competitors, err := o.competitors.Execute(ctx, &matchcompetitors.Input{StartupInput: in})
	if err != nil {
		return nil, err
	}

	failures, err := o.failures.Execute(ctx, &matchfailurepatterns.Input{StartupInput: in})
	if err != nil {
		return nil, err
	}

	risk, err := o.risk.Execute(ctx, &calculateriskscore.Input{
		StartupInput: in,
		Mode:         models.ModeCatalog,
	})
	if err != nil {
		return nil, err
	}

	decision, err := o.decision.Execute(ctx, &makedecision.Input{
		StartupInput:   in,
		Mode:           models.ModeCatalog,
		RiskScore:      risk.RiskScore,
		Competitors:    competitors.Competitors,
		FailedStartups: failures.FailedStartups,
	})
	if err != nil {
		return nil, err
	}

	actions, err := o.actions.Execute(ctx, &generateactionitems.Input{
		StartupInput:   in,
		Mode:           models.ModeCatalog,
		RiskScore:      risk.RiskScore,
		Assumptions:    assumptions.Assumptions,
		Competitors:    competitors.Competitors,
		FailedStartups: failures.FailedStartups,
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("catalog analysis completed", map[string]interface{}{
		"startupName": in.StartupName,
		"decision":    decision.Decision.Decision,
		"totalRisk":   risk.RiskScore.Total,
	})

	return &models.AnalysisResult{
		Input:           in,
		Mode:            models.ModeCatalog,
		Assumptions:     assumptions.Assumptions,
		RiskScore:       risk.RiskScore,
		Competitors:     competitors.Competitors,
		FailedStartups:  failures.FailedStartups,
		Decision:        decision.Decision,
		ActionItems:     actions.ActionItems,
		DataSourcesUsed: []string{"Fallback Data"},
		AnalyzedAt:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

type lookupResults struct {
	competitors      []models.Competitor
	competitorSource string
	failures         []models.FailedStartup
	failureSource    string
	trends           []models.MarketTrend
	trendSource      string
	technicalSignals []models.RiskSignal
	technicalLive    bool
	newsSignals      []models.RiskSignal
}

// RunFullAnalysis runs the live pipeline: five external lookups fan
// out concurrently, each degrading independently to fallback data, and
// the enriched rule engines consume the merged evidence.
func (o *Orchestrator) RunFullAnalysis(ctx context.Context, input models.StartupInput) (*models.AnalysisResult, error) {
	validated, err := o.validate.Execute(ctx, &validatestartupinput.Input{StartupInput: input})
	if err != nil {
		return nil, err
	}
	in := validated.StartupInput

	results := o.gatherEvidence(ctx, in)
	allSignals := append(append([]models.RiskSignal{}, results.technicalSignals...), results.newsSignals...)

	assumptions, err := o.assumptions.Execute(ctx, &extractassumptions.Input{
		StartupInput: in,
		Mode:         models.ModeLive,
		Competitors:  results.competitors,
		Trends:       results.trends,
	})
	if err != nil {
		return nil, err
	}

	risk, err := o.risk.Execute(ctx, &calculateriskscore.Input{
		StartupInput:   in,
		Mode:           models.ModeLive,
		Competitors:    results.competitors,
		FailedStartups: results.failures,
		Trends:         results.trends,
		Signals:        allSignals,
	})
	if err != nil {
		return nil, err
	}

	decision, err := o.decision.Execute(ctx, &makedecision.Input{
		StartupInput:   in,
		Mode:           models.ModeLive,
		RiskScore:      risk.RiskScore,
		Competitors:    results.competitors,
		FailedStartups: results.failures,
	})
	if err != nil {
		return nil, err
	}

	actions, err := o.actions.Execute(ctx, &generateactionitems.Input{
		StartupInput:   in,
		Mode:           models.ModeLive,
		RiskScore:      risk.RiskScore,
		Assumptions:    assumptions.Assumptions,
		Competitors:    results.competitors,
		FailedStartups: results.failures,
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("live analysis completed", map[string]interface{}{
		"startupName": in.StartupName,
		"decision":    decision.Decision.Decision,
		"totalRisk":   risk.RiskScore.Total,
	})

	return &models.AnalysisResult{
		Input:           in,
		Mode:            models.ModeLive,
		Assumptions:     assumptions.Assumptions,
		RiskScore:       risk.RiskScore,
		Competitors:     results.competitors,
		FailedStartups:  results.failures,
		Trends:          results.trends,
		Decision:        decision.Decision,
		ActionItems:     actions.ActionItems,
		DataSourcesUsed: o.dataSources(results),
		AnalyzedAt:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// gatherEvidence fans out the five lookups. Every branch fills its
// slot even on failure, so the pipeline never waits on a retry.
func (o *Orchestrator) gatherEvidence(ctx context.Context, in models.StartupInput) *lookupResults {
	results := &lookupResults{}
	var wg sync.WaitGroup

	wg.Add(5)

	go func() {
		defer wg.Done()
		lctx, cancel := context.WithTimeout(ctx, o.lookupTimeout)
		defer cancel()
		if o.lookups.Competitors != nil {
			output, err := o.lookups.Competitors.Execute(lctx, &searchcompetitors.Input{
				Idea:     in.Idea,
				Industry: in.Industry,
			})
			if err == nil {
				metrics.EnrichmentLookups.WithLabelValues("competitors", "ok").Inc()
				results.competitors = output.Competitors
				results.competitorSource = output.Source
				return
			}
			metrics.EnrichmentLookups.WithLabelValues("competitors", "degraded").Inc()
			o.logger.Warn("competitor lookup degraded", map[string]interface{}{"error": err.Error()})
		}
		results.competitors = o.catalog.FallbackCompetitorsFor(in.Industry)
		results.competitorSource = "Fallback Data"
	}()

	go func() {
		defer wg.Done()
		lctx, cancel := context.WithTimeout(ctx, o.lookupTimeout)
		defer cancel()
		if o.lookups.Failures != nil {
			output, err := o.lookups.Failures.Execute(lctx, &searchfailedstartups.Input{
				Idea:     in.Idea,
				Industry: in.Industry,
			})
			if err == nil {
				metrics.EnrichmentLookups.WithLabelValues("failures", "ok").Inc()
				results.failures = output.FailedStartups
				results.failureSource = output.Source
				return
			}
			metrics.EnrichmentLookups.WithLabelValues("failures", "degraded").Inc()
			o.logger.Warn("failure lookup degraded", map[string]interface{}{"error": err.Error()})
		}
		results.failures = o.catalog.FallbackFailuresFor(in.Industry)
		results.failureSource = "Fallback Data"
	}()

	go func() {
		defer wg.Done()
		lctx, cancel := context.WithTimeout(ctx, o.lookupTimeout)
		defer cancel()
		keywords := trendKeywords(in)
		if o.lookups.Trends != nil {
			output, err := o.lookups.Trends.Execute(lctx, &fetchmarkettrends.Input{Keywords: keywords})
			if err == nil {
				metrics.EnrichmentLookups.WithLabelValues("trends", "ok").Inc()
				results.trends = output.Trends
				results.trendSource = output.Source
				return
			}
			metrics.EnrichmentLookups.WithLabelValues("trends", "degraded").Inc()
			o.logger.Warn("trend lookup degraded", map[string]interface{}{"error": err.Error()})
		}
		results.trends = fetchmarkettrends.FallbackTrends(keywords)
		results.trendSource = "Fallback Data"
	}()

	go func() {
		defer wg.Done()
		lctx, cancel := context.WithTimeout(ctx, o.lookupTimeout)
		defer cancel()
		if o.lookups.TechnicalRisks != nil {
			output, err := o.lookups.TechnicalRisks.Execute(lctx, &checktechnicalrisks.Input{
				Dependencies: []string{in.CriticalDependency},
				Platform:     in.Platform,
			})
			if err == nil {
				metrics.EnrichmentLookups.WithLabelValues("technical", "ok").Inc()
				results.technicalSignals = output.Signals
				results.technicalLive = true
				return
			}
			metrics.EnrichmentLookups.WithLabelValues("technical", "degraded").Inc()
			o.logger.Warn("technical risk lookup degraded", map[string]interface{}{"error": err.Error()})
		}
		results.technicalSignals = o.catalog.SignalsForPlatform(in.Platform)
	}()

	go func() {
		defer wg.Done()
		lctx, cancel := context.WithTimeout(ctx, o.lookupTimeout)
		defer cancel()
		if o.lookups.News != nil {
			output, err := o.lookups.News.Execute(lctx, &fetchindustrynews.Input{Industry: in.Industry})
			if err == nil {
				metrics.EnrichmentLookups.WithLabelValues("news", "ok").Inc()
				results.newsSignals = output.Signals
				return
			}
			metrics.EnrichmentLookups.WithLabelValues("news", "degraded").Inc()
			o.logger.Warn("news lookup degraded", map[string]interface{}{"error": err.Error()})
		}
		// news is purely additive, no fallback
	}()

	wg.Wait()
	return results
}

// trendKeywords pairs the industry with the leading words of the idea.
func trendKeywords(in models.StartupInput) []string {
	keywords := []string{in.Industry}
	words := strings.Fields(in.Idea)
	if len(words) > 3 {
		words = words[:3]
	}
	if len(words) > 0 {
		keywords = append(keywords, strings.Join(words, " "))
	}
	return keywords
}

func (o *Orchestrator) dataSources(results *lookupResults) []string {
	var sources []string
	add := func(s string) {
		for _, existing := range sources {
			if existing == s {
				return
			}
		}
		sources = append(sources, s)
	}

	add(results.competitorSource)
	add(results.failureSource)
	add(results.trendSource)
	if results.technicalLive && len(results.technicalSignals) > 0 {
		add("GitHub API")
	}
	if len(results.newsSignals) > 0 {
		add("News Sentiment Analysis")
	}
	return sources
}
