// internal/workers/enrichment/search-failed-startups/handler_test.go
package searchfailedstartups

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"hits": [
		{"objectID": "101", "title": "Invoicely automated invoicing startup failed after funding dried up", "created_at": "2023-06-01T10:00:00Z"},
		{"objectID": "102", "title": "Why our automated invoicing product shut down - a postmortem on weak demand", "created_at": "2022-03-15T08:30:00Z"},
		{"objectID": "103", "title": "Unrelated kernel discussion", "created_at": "2021-01-01T00:00:00Z"},
		{"objectID": "104", "title": ""}
	]
}`

func newTestHandler(t *testing.T, baseURL string) *Handler {
	config := LoadConfig()
	config.BaseURL = baseURL
	config.Timeout = 2 * time.Second
	return NewHandler(config, catalog.Default(), logger.NewTestLogger(t))
}

func TestExecute_ParsesAndScoresHits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "tags=story")
		assert.Contains(t, r.URL.RawQuery, "hitsPerPage=15")
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	output, err := h.Execute(context.Background(), &Input{
		Idea:     "automated invoicing for startup founders",
		Industry: "fintech",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hacker News API", output.Source)
	require.NotEmpty(t, output.FailedStartups)

	first := output.FailedStartups[0]
	assert.Equal(t, 2023, first.Year)
	assert.Equal(t, "news.ycombinator.com/item?id=101", first.Source)
	assert.Contains(t, first.FailureReasons, "Ran out of funding")
	assert.Equal(t, "Maintain healthy cash runway and focus on capital efficiency", first.Lesson)
	assert.Contains(t, first.PatternTags, "fintech")

	// results are ordered by similarity
	for i := 1; i < len(output.FailedStartups); i++ {
		assert.GreaterOrEqual(t, output.FailedStartups[i-1].Similarity, output.FailedStartups[i].Similarity)
	}

	// weak matches below the similarity floor are dropped
	for _, f := range output.FailedStartups {
		assert.GreaterOrEqual(t, f.Similarity, 10)
		assert.NotContains(t, f.Reason, "kernel")
	}
}

func TestExecute_NonOKStatusReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	_, err := h.Execute(context.Background(), &Input{Idea: "x", Industry: "fintech"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search API returned 503")
}

func TestExecute_NoRelevantHitsReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits": [{"objectID": "1", "title": "Unrelated kernel discussion", "created_at": "2021-01-01T00:00:00Z"}]}`))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	_, err := h.Execute(context.Background(), &Input{Idea: "automated invoicing", Industry: "fintech"})
	require.Error(t, err)
}

func TestFallback_UsesIndustryCatalog(t *testing.T) {
	h := newTestHandler(t, "http://127.0.0.1:0")

	output := h.fallback("healthtech")
	assert.Equal(t, "Fallback Data", output.Source)
	require.NotEmpty(t, output.FailedStartups)
	assert.Equal(t, "Theranos", output.FailedStartups[0].Name)
}

func TestSimilarityScore(t *testing.T) {
	assert.Equal(t, 100, similarityScore("invoicing automated", "automated invoicing"))
	assert.Equal(t, 0, similarityScore("kernel drivers", "automated invoicing"))
	// short words are ignored
	assert.Equal(t, 0, similarityScore("a an the", "to of in"))
}

func TestExtractFailureReasons_Default(t *testing.T) {
	reasons := extractFailureReasons("We closed our doors quietly")
	assert.Equal(t, []string{"Business model challenges"}, reasons)
}
