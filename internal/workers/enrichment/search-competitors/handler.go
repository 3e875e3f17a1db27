// internal/workers/enrichment/search-competitors/handler.go
package searchcompetitors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "search-competitors"

	sourceLive     = "DuckDuckGo Search API"
	sourceFallback = "Fallback Data"
)

var (
	ErrCompetitorSearchTimeout = errors.New("COMPETITOR_SEARCH_TIMEOUT")

	companyNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([A-Z][a-zA-Z0-9]+(?:\s[A-Z][a-zA-Z0-9]+)?)\s*[-–—]`),
		regexp.MustCompile(`^([A-Z][a-zA-Z0-9]+(?:\s[A-Z][a-zA-Z0-9]+)?)\s+is`),
		regexp.MustCompile(`^([A-Z][a-zA-Z0-9]+(?:\.[a-zA-Z]+)?)\s`),
	}
	yearPattern     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	nonAlnumPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

type Handler struct {
	config  *Config
	client  *http.Client
	cache   *redis.Client
	catalog *catalog.Catalog
	logger  logger.Logger
}

// NewHandler builds the worker. The redis client is optional; with a
// nil cache every job hits the search API directly.
func NewHandler(config *Config, cache *redis.Client, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		cache:   cache,
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.logger.Warn("competitor search failed, using fallback catalog", map[string]interface{}{
			"industry": input.Industry,
			"error":    err.Error(),
		})
		output = h.fallback(input.Industry)
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	cacheKey := fmt.Sprintf("competitors:%s:%s", input.Industry, input.Idea)
	if cached := h.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	query := fmt.Sprintf("%s %s startup competitors alternatives", input.Idea, input.Industry)
	resp, err := h.search(ctx, query)
	if err != nil {
		return nil, err
	}

	competitors := h.parseCompetitors(resp, query)
	if len(competitors) == 0 {
		return nil, fmt.Errorf("no competitors found for %q", query)
	}
	if len(competitors) > h.config.MaxResults {
		competitors = competitors[:h.config.MaxResults]
	}

	output := &Output{Competitors: competitors, Source: sourceLive}
	h.toCache(ctx, cacheKey, output)

	h.logger.Info("competitor search completed", map[string]interface{}{
		"query": query,
		"count": len(competitors),
	})
	return output, nil
}

func (h *Handler) search(ctx context.Context, query string) (*duckDuckGoResponse, error) {
	searchURL := fmt.Sprintf("%s/?q=%s&format=json&no_html=1", h.config.BaseURL, url.QueryEscape(query))
	if h.config.ProxyURL != "" {
		searchURL = h.config.ProxyURL + url.QueryEscape(searchURL)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "timeout") ||
			strings.Contains(err.Error(), "deadline") ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, ErrCompetitorSearchTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var apiResponse duckDuckGoResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}
	return &apiResponse, nil
}

// parseCompetitors maps the instant-answer payload onto competitors.
// The first three related topics count as direct competition, the next
// three as indirect, the rest as substitutes.
func (h *Handler) parseCompetitors(resp *duckDuckGoResponse, query string) []models.Competitor {
	var competitors []models.Competitor

	topics := resp.RelatedTopics
	if len(topics) > 8 {
		topics = topics[:8]
	}
	for idx, topic := range topics {
		if topic.Text != "" && topic.FirstURL != "" {
			compType := "substitute"
			if idx < 3 {
				compType = "direct"
			} else if idx < 6 {
				compType = "indirect"
			}
			threat := calculateThreatLevel(topic.Text, query)
			competitors = append(competitors, models.Competitor{
				Name:              extractCompanyName(topic.Text),
				URL:               topic.FirstURL,
				Description:       truncate(topic.Text, 150),
				Type:              compType,
				Threat:            threat,
				ThreatDescription: threatDescriptions[threat],
				Founded:           extractYear(topic.Text),
			})
			continue
		}

		nested := topic.Topics
		if len(nested) > 2 {
			nested = nested[:2]
		}
		for _, sub := range nested {
			if sub.Text == "" || sub.FirstURL == "" {
				continue
			}
			competitors = append(competitors, models.Competitor{
				Name:              extractCompanyName(sub.Text),
				URL:               sub.FirstURL,
				Description:       truncate(sub.Text, 150),
				Type:              "indirect",
				Threat:            "medium",
				ThreatDescription: "Related player in the space",
			})
		}
	}

	if resp.Abstract != "" && resp.AbstractURL != "" {
		name := resp.Heading
		if name == "" {
			name = "Industry Leader"
		}
		leader := models.Competitor{
			Name:              name,
			URL:               resp.AbstractURL,
			Description:       truncate(resp.Abstract, 150),
			Type:              "direct",
			Threat:            "high",
			ThreatDescription: "Major player in the space with established market presence",
		}
		competitors = append([]models.Competitor{leader}, competitors...)
	}

	return competitors
}

var threatDescriptions = map[string]string{
	"high":   "High overlap with your value proposition. Direct competition expected.",
	"medium": "Moderate overlap. May compete for same user segments.",
	"low":    "Indirect competition. Different approach to similar problems.",
}

// calculateThreatLevel counts how many meaningful query words appear in
// the result text.
func calculateThreatLevel(text, query string) string {
	lower := strings.ToLower(text)
	matches := 0
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) > 3 && strings.Contains(lower, word) {
			matches++
		}
	}
	switch {
	case matches >= 3:
		return "high"
	case matches >= 2:
		return "medium"
	default:
		return "low"
	}
}

func extractCompanyName(text string) string {
	for _, pattern := range companyNamePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	words := strings.Fields(text)
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.TrimSpace(nonAlnumPattern.ReplaceAllString(strings.Join(words, " "), ""))
}

func extractYear(text string) string {
	return yearPattern.FindString(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (h *Handler) fallback(industry string) *Output {
	return &Output{
		Competitors: h.catalog.FallbackCompetitorsFor(industry),
		Source:      sourceFallback,
	}
}

func (h *Handler) fromCache(ctx context.Context, key string) *Output {
	if h.cache == nil {
		return nil
	}
	data, err := h.cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var output Output
	if err := json.Unmarshal([]byte(data), &output); err != nil {
		return nil
	}
	h.logger.Debug("competitor cache hit", map[string]interface{}{"key": key})
	return &output
}

func (h *Handler) toCache(ctx context.Context, key string, output *Output) {
	if h.cache == nil {
		return
	}
	data, err := json.Marshal(output)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("competitor cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
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
