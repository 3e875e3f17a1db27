// internal/workers/enrichment/fetch-market-trends/handler_test.go
package fetchmarkettrends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blindspot-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const richResponse = `{
	"Abstract": "Fintech is a growing industry combining finance and technology",
	"Definition": "Financial technology",
	"RelatedTopics": [
		{"Text": "fintech startups raising capital this year"},
		{"Text": "digital banking adoption trends"},
		{"Text": "payments infrastructure growth"},
		{"Text": "embedded finance platforms"},
		{"Text": "regtech compliance tooling"},
		{"Text": "open banking APIs"}
	]
}`

func newTestHandler(t *testing.T, baseURL string) *Handler {
	config := LoadConfig()
	config.BaseURL = baseURL
	config.Timeout = 2 * time.Second
	return NewHandler(config, logger.NewTestLogger(t))
}

func TestExecute_RichAnswerIsRising(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(richResponse))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	output, err := h.Execute(context.Background(), &Input{Keywords: []string{"fintech"}})
	require.NoError(t, err)
	require.Len(t, output.Trends, 1)

	trend := output.Trends[0]
	assert.Equal(t, "fintech", trend.Keyword)
	// 50 base + 20 abstract + 18 topics + 10 definition
	assert.Equal(t, 98, trend.Interest)
	assert.Equal(t, "rising", trend.Trend)

	// related queries keep the first four words of each topic
	require.NotEmpty(t, trend.RelatedQueries)
	assert.Equal(t, "fintech startups raising capital", trend.RelatedQueries[0])
	assert.LessOrEqual(t, len(trend.RelatedQueries), 5)
	for _, q := range trend.RelatedQueries {
		assert.LessOrEqual(t, len(strings.Fields(q)), 4)
	}
}

func TestExecute_SparseAnswerIsDeclining(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RelatedTopics": [{"Text": "one topic"}]}`))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	output, err := h.Execute(context.Background(), &Input{Keywords: []string{"fax machines"}})
	require.NoError(t, err)

	trend := output.Trends[0]
	assert.Equal(t, 53, trend.Interest)
	assert.Equal(t, "declining", trend.Trend)
}

func TestExecute_FailedKeywordGetsNeutralFallback(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(richResponse))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	output, err := h.Execute(context.Background(), &Input{Keywords: []string{"fintech", "payments"}})
	require.NoError(t, err)
	require.Len(t, output.Trends, 2)

	degraded := output.Trends[1]
	assert.Equal(t, "payments", degraded.Keyword)
	assert.Equal(t, 50, degraded.Interest)
	assert.Equal(t, "stable", degraded.Trend)
	assert.Equal(t, []string{"payments software", "payments app", "best payments", "payments for business"}, degraded.RelatedQueries)
}

func TestExecute_AllKeywordsFailedReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	_, err := h.Execute(context.Background(), &Input{Keywords: []string{"a", "b"}})
	require.Error(t, err)
}

func TestExecute_CapsKeywordsAtFive(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(richResponse))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	output, err := h.Execute(context.Background(), &Input{
		Keywords: []string{"one", "two", "three", "four", "five", "six", "seven"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, calls)
	assert.Len(t, output.Trends, 5)
}

func TestFallback_CoversEveryKeyword(t *testing.T) {
	h := newTestHandler(t, "http://127.0.0.1:0")

	output := h.fallback([]string{"fintech", "payments"})
	assert.Equal(t, "Fallback Data", output.Source)
	require.Len(t, output.Trends, 2)
	for _, trend := range output.Trends {
		assert.Equal(t, 50, trend.Interest)
		assert.Equal(t, "stable", trend.Trend)
	}
}
