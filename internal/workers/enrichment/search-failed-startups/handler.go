// internal/workers/enrichment/search-failed-startups/handler.go
package searchfailedstartups

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-failed-startups"

	sourceLive     = "Hacker News API"
	sourceFallback = "Fallback Data"

	minSimilarity = 10
)

var (
	ErrFailureSearchTimeout = errors.New("FAILURE_SEARCH_TIMEOUT")

	companyNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([A-Z][a-zA-Z0-9]+(?:\s[A-Z][a-zA-Z0-9]+)?)\s*[-–—]`),
		regexp.MustCompile(`^([A-Z][a-zA-Z0-9]+(?:\s[A-Z][a-zA-Z0-9]+)?)\s+is`),
		regexp.MustCompile(`^([A-Z][a-zA-Z0-9]+(?:\.[a-zA-Z]+)?)\s`),
	}
	nonAlnumPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

type Handler struct {
	config  *Config
	client  *http.Client
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
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
		h.logger.Warn("failure search failed, using fallback catalog", map[string]interface{}{
			"industry": input.Industry,
			"error":    err.Error(),
		})
		output = h.fallback(input.Industry)
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	query := fmt.Sprintf("%s startup failed shutdown postmortem", input.Industry)
	searchURL := fmt.Sprintf("%s/search?query=%s&tags=story&hitsPerPage=15",
		h.config.BaseURL, url.QueryEscape(query))

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
			return nil, ErrFailureSearchTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var apiResponse algoliaResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	failures := h.parseHits(apiResponse.Hits, input)
	if len(failures) == 0 {
		return nil, fmt.Errorf("no relevant failure stories for %q", input.Industry)
	}

	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Similarity > failures[j].Similarity
	})
	if len(failures) > h.config.MaxResults {
		failures = failures[:h.config.MaxResults]
	}

	h.logger.Info("failure search completed", map[string]interface{}{
		"industry": input.Industry,
		"count":    len(failures),
	})

	return &Output{FailedStartups: failures, Source: sourceLive}, nil
}

func (h *Handler) parseHits(hits []algoliaHit, input *Input) []models.FailedStartup {
	var failures []models.FailedStartup
	for _, hit := range hits {
		if hit.Title == "" {
			continue
		}

		similarity := similarityScore(hit.Title+" "+input.Industry, input.Idea)
		if similarity < minSimilarity {
			continue
		}

		name := extractCompanyName(hit.Title)
		if name == "" {
			name = "Startup"
		}

		failures = append(failures, models.FailedStartup{
			Name:           name,
			Year:           yearFromTimestamp(hit.CreatedAt),
			Reason:         hit.Title,
			FailureReasons: extractFailureReasons(hit.Title),
			PatternTags:    extractPatternTags(hit.Title, input.Industry),
			Lesson:         generateLesson(hit.Title),
			Similarity:     similarity,
			Source:         fmt.Sprintf("news.ycombinator.com/item?id=%s", hit.ObjectID),
		})
	}
	return failures
}

// similarityScore is the Jaccard index over meaningful words, scaled
// to 0-100.
func similarityScore(a, b string) int {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return int(math.Round(float64(intersection) / float64(union) * 100))
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if len(w) > 3 {
			set[w] = true
		}
	}
	return set
}

func extractFailureReasons(title string) []string {
	lower := strings.ToLower(title)
	var reasons []string
	if strings.Contains(lower, "funding") || strings.Contains(lower, "money") {
		reasons = append(reasons, "Ran out of funding")
	}
	if strings.Contains(lower, "market") || strings.Contains(lower, "demand") {
		reasons = append(reasons, "Insufficient market demand")
	}
	if strings.Contains(lower, "competition") || strings.Contains(lower, "competitor") {
		reasons = append(reasons, "Outcompeted")
	}
	if strings.Contains(lower, "pivot") || strings.Contains(lower, "product") {
		reasons = append(reasons, "Product-market fit issues")
	}
	if strings.Contains(lower, "team") || strings.Contains(lower, "founder") {
		reasons = append(reasons, "Team issues")
	}
	if len(reasons) == 0 {
		reasons = []string{"Business model challenges"}
	}
	return reasons
}

func extractPatternTags(title, industry string) []string {
	lower := strings.ToLower(title)
	tags := []string{industry}
	if strings.Contains(lower, "b2b") {
		tags = append(tags, "B2B")
	}
	if strings.Contains(lower, "b2c") || strings.Contains(lower, "consumer") {
		tags = append(tags, "B2C")
	}
	if strings.Contains(lower, "saas") {
		tags = append(tags, "SaaS")
	}
	if strings.Contains(lower, "marketplace") {
		tags = append(tags, "Marketplace")
	}
	if strings.Contains(lower, "ai") || strings.Contains(lower, "ml") {
		tags = append(tags, "AI/ML")
	}
	return tags
}

func generateLesson(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "funding") || strings.Contains(lower, "money"):
		return "Maintain healthy cash runway and focus on capital efficiency"
	case strings.Contains(lower, "market") || strings.Contains(lower, "demand"):
		return "Validate market demand with paying customers before scaling"
	case strings.Contains(lower, "competition"):
		return "Build a sustainable competitive moat early"
	default:
		return "Validate market demand with paying customers before scaling"
	}
}

func yearFromTimestamp(createdAt string) int {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return 0
	}
	return t.Year()
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

func (h *Handler) fallback(industry string) *Output {
	return &Output{
		FailedStartups: h.catalog.FallbackFailuresFor(industry),
		Source:         sourceFallback,
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
