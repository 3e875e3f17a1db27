// internal/workers/enrichment/fetch-industry-news/handler.go
package fetchindustrynews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "fetch-industry-news"

	signalSource = "Hacker News"
)

var (
	positiveWords = []string{
		"success", "growth", "funding", "launch", "milestone", "profitable",
		"breakthrough", "innovation", "raises", "valued", "expansion",
		"revenue", "growing", "unicorn", "ipo",
	}
	negativeWords = []string{
		"fail", "shutdown", "layoff", "struggle", "decline", "bankrupt",
		"closes", "downturn", "crash", "bust", "cuts", "losses",
		"struggling", "shutting", "failed",
	}
)

type Handler struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		// news sentiment is purely additive, so a failed fetch just
		// means no signals
		h.logger.Warn("industry news fetch failed", map[string]interface{}{
			"industry": input.Industry,
			"error":    err.Error(),
		})
		output = &Output{Signals: []models.RiskSignal{}}
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	query := fmt.Sprintf("%s startup 2024", input.Industry)
	searchURL := fmt.Sprintf("%s/search?query=%s&hitsPerPage=10",
		h.config.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API returned %d", resp.StatusCode)
	}

	var apiResponse algoliaResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	signals := make([]models.RiskSignal, 0, h.config.MaxSignals)
	for _, hit := range apiResponse.Hits {
		if hit.Title == "" {
			continue
		}
		if len(signals) >= h.config.MaxSignals {
			break
		}
		signals = append(signals, models.RiskSignal{
			Type:        "market",
			Source:      signalSource,
			Description: truncate(hit.Title, 100),
			Impact:      analyzeSentiment(hit.Title),
		})
	}

	h.logger.Info("industry news fetched", map[string]interface{}{
		"industry": input.Industry,
		"signals":  len(signals),
	})

	return &Output{Signals: signals}, nil
}

// analyzeSentiment is a simple word-list vote over the headline.
func analyzeSentiment(title string) string {
	lower := strings.ToLower(title)
	positive, negative := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}
	switch {
	case positive > negative:
		return "positive"
	case negative > positive:
		return "negative"
	default:
		return "neutral"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
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
