// internal/workers/enrichment/fetch-market-trends/handler.go
package fetchmarkettrends

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
	TaskType = "fetch-market-trends"

	sourceLive     = "Trend Analysis"
	sourceFallback = "Fallback Data"
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
		h.logger.Warn("trend lookup failed, using neutral fallback", map[string]interface{}{
			"error": err.Error(),
		})
		output = h.fallback(input.Keywords)
	}

	h.completeJob(client, job, output)
}

// execute looks each keyword up independently. A failed keyword gets a
// neutral fallback trend so the result always covers every keyword.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	keywords := input.Keywords
	if len(keywords) > h.config.MaxKeywords {
		keywords = keywords[:h.config.MaxKeywords]
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords provided")
	}

	trends := make([]models.MarketTrend, 0, len(keywords))
	failures := 0
	for _, keyword := range keywords {
		trend, err := h.lookupKeyword(ctx, keyword)
		if err != nil {
			h.logger.Warn("keyword lookup degraded", map[string]interface{}{
				"keyword": keyword,
				"error":   err.Error(),
			})
			trend = fallbackTrend(keyword)
			failures++
		}
		trends = append(trends, trend)
	}

	if failures == len(keywords) {
		return nil, fmt.Errorf("all %d keyword lookups failed", failures)
	}

	h.logger.Info("trend lookup completed", map[string]interface{}{
		"keywords": len(keywords),
		"degraded": failures,
	})

	return &Output{Trends: trends, Source: sourceLive}, nil
}

func (h *Handler) lookupKeyword(ctx context.Context, keyword string) (models.MarketTrend, error) {
	query := fmt.Sprintf("%s market trend 2024", keyword)
	searchURL := fmt.Sprintf("%s/?q=%s&format=json", h.config.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return models.MarketTrend{}, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return models.MarketTrend{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.MarketTrend{}, fmt.Errorf("trend API returned %d", resp.StatusCode)
	}

	var apiResponse duckDuckGoResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return models.MarketTrend{}, err
	}

	return buildTrend(keyword, &apiResponse), nil
}

// buildTrend derives an interest score and direction from how much the
// instant-answer API knows about the keyword.
func buildTrend(keyword string, resp *duckDuckGoResponse) models.MarketTrend {
	interest := 50
	if resp.Abstract != "" {
		interest += 20
	}
	topicBoost := len(resp.RelatedTopics) * 3
	if topicBoost > 25 {
		topicBoost = 25
	}
	interest += topicBoost
	if resp.Definition != "" {
		interest += 10
	}
	if interest > 100 {
		interest = 100
	}
	if interest < 0 {
		interest = 0
	}

	trend := "declining"
	topicCount := len(resp.RelatedTopics)
	hasAbstract := resp.Abstract != ""
	if topicCount > 5 && hasAbstract {
		trend = "rising"
	} else if topicCount > 2 || hasAbstract {
		trend = "stable"
	}

	var queries []string
	for i, topic := range resp.RelatedTopics {
		if i >= 5 {
			break
		}
		words := strings.Fields(topic.Text)
		if len(words) > 4 {
			words = words[:4]
		}
		if len(words) == 0 {
			continue
		}
		queries = append(queries, strings.Join(words, " "))
	}

	return models.MarketTrend{
		Keyword:        keyword,
		Interest:       interest,
		Trend:          trend,
		RelatedQueries: queries,
	}
}

func fallbackTrend(keyword string) models.MarketTrend {
	return models.MarketTrend{
		Keyword:  keyword,
		Interest: 50,
		Trend:    "stable",
		RelatedQueries: []string{
			keyword + " software",
			keyword + " app",
			"best " + keyword,
			keyword + " for business",
		},
	}
}

// FallbackTrends returns the neutral stand-in trends used when the
// lookup is unavailable.
func FallbackTrends(keywords []string) []models.MarketTrend {
	trends := make([]models.MarketTrend, 0, len(keywords))
	for _, keyword := range keywords {
		trends = append(trends, fallbackTrend(keyword))
	}
	return trends
}

func (h *Handler) fallback(keywords []string) *Output {
	if len(keywords) > h.config.MaxKeywords {
		keywords = keywords[:h.config.MaxKeywords]
	}
	return &Output{Trends: FallbackTrends(keywords), Source: sourceFallback}
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
