// internal/workers/enrichment/check-technical-risks/handler.go
package checktechnicalrisks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-technical-risks"

	signalSource = "GitHub API"
)

type Handler struct {
	config  *Config
	client  *http.Client
	catalog *catalog.Catalog
	logger  logger.Logger

	// now is swappable so tests can pin the reference time.
	now func() time.Time
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:     time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey": job.Key,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, fmt.Errorf("parse input: %w", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		// dependency checks never block the pipeline
		h.logger.Warn("technical risk check degraded", map[string]interface{}{
			"error": err.Error(),
		})
		output = &Output{Signals: h.catalog.SignalsForPlatform(input.Platform)}
	}

	h.completeJob(client, job, output)
}

// execute inspects each named dependency's most popular GitHub repo for
// maintenance signals. A failed lookup is skipped, not fatal. The
// static platform signals are always appended.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var signals []models.RiskSignal

	deps := filterDependencies(input.Dependencies, h.config.MaxDeps)
	for _, dep := range deps {
		depSignals, err := h.checkDependency(ctx, dep)
		if err != nil {
			h.logger.Warn("dependency lookup skipped", map[string]interface{}{
				"dependency": dep,
				"error":      err.Error(),
			})
			continue
		}
		signals = append(signals, depSignals...)
	}

	signals = append(signals, h.catalog.SignalsForPlatform(input.Platform)...)

	h.logger.Info("technical risk check completed", map[string]interface{}{
		"dependencies": len(deps),
		"signals":      len(signals),
	})

	return &Output{Signals: signals}, nil
}

func (h *Handler) checkDependency(ctx context.Context, dep string) ([]models.RiskSignal, error) {
	searchURL := fmt.Sprintf("%s/search/repositories?q=%s&sort=stars&per_page=1",
		h.config.BaseURL, url.QueryEscape(dep))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var apiResponse githubSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}
	if len(apiResponse.Items) == 0 {
		return nil, fmt.Errorf("no repositories found for %q", dep)
	}

	repo := apiResponse.Items[0]
	days := h.daysSinceUpdate(repo.UpdatedAt)

	impact := "neutral"
	if repo.StargazersCount > 1000 && days < 30 {
		impact = "positive"
	} else if days > 180 {
		impact = "negative"
	}

	signals := []models.RiskSignal{{
		Type:        "technical",
		Source:      signalSource,
		Description: fmt.Sprintf("%s: %s stars, last updated %d days ago", repo.FullName, formatStars(repo.StargazersCount), days),
		Impact:      impact,
	}}

	if repo.OpenIssuesCount > 100 {
		signals = append(signals, models.RiskSignal{
			Type:        "technical",
			Source:      signalSource,
			Description: fmt.Sprintf("%s has %d open issues - may indicate instability", repo.FullName, repo.OpenIssuesCount),
			Impact:      "negative",
		})
	}

	return signals, nil
}

func (h *Handler) daysSinceUpdate(updatedAt string) int {
	t, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return 0
	}
	return int(h.now().Sub(t).Hours() / 24)
}

func filterDependencies(deps []string, limit int) []string {
	var filtered []string
	for _, d := range deps {
		if d == "" || d == models.DependencyNone {
			continue
		}
		filtered = append(filtered, d)
		if len(filtered) >= limit {
			break
		}
	}
	return filtered
}

// formatStars renders a star count with thousands separators.
func formatStars(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey": job.Key,
		"error":  err.Error(),
	})

	_, _ = client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(err.Error()).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
