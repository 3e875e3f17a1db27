// internal/workers/enrichment/check-technical-risks/handler_test.go
package checktechnicalrisks

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, baseURL string) *Handler {
	config := LoadConfig()
	config.BaseURL = baseURL
	config.Timeout = 2 * time.Second
	h := NewHandler(config, catalog.Default(), logger.NewTestLogger(t))
	h.now = func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return h
}

func repoJSON(fullName string, stars, issues int, updatedAt string) string {
	return fmt.Sprintf(`{"items": [{"full_name": %q, "stargazers_count": %d, "open_issues_count": %d, "updated_at": %q}]}`,
		fullName, stars, issues, updatedAt)
}

func TestExecute_HealthyRepoIsPositive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		w.Write([]byte(repoJSON("stripe/stripe-node", 3500, 40, "2024-05-20T00:00:00Z")))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	output, err := h.Execute(context.Background(), &Input{
		Dependencies: []string{"stripe"},
		Platform:     "api",
	})
	require.NoError(t, err)
	require.NotEmpty(t, output.Signals)

	first := output.Signals[0]
	assert.Equal(t, "technical", first.Type)
	assert.Equal(t, "GitHub API", first.Source)
	assert.Equal(t, "stripe/stripe-node: 3,500 stars, last updated 12 days ago", first.Description)
	assert.Equal(t, "positive", first.Impact)
}

func TestExecute_StaleRepoIsNegative(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(repoJSON("old/repo", 500, 20, "2023-01-01T00:00:00Z")))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	output, err := h.Execute(context.Background(), &Input{
		Dependencies: []string{"oldlib"},
		Platform:     "web",
	})
	require.NoError(t, err)

	assert.Equal(t, "negative", output.Signals[0].Impact)
}

func TestExecute_ManyOpenIssuesAddsWarning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(repoJSON("busy/repo", 2000, 450, "2024-05-25T00:00:00Z")))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	output, err := h.Execute(context.Background(), &Input{
		Dependencies: []string{"busylib"},
		Platform:     "web",
	})
	require.NoError(t, err)

	assert.Equal(t, "busy/repo has 450 open issues - may indicate instability", output.Signals[1].Description)
	assert.Equal(t, "negative", output.Signals[1].Impact)
}

func TestExecute_FailedLookupIsSkippedNotFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	output, err := h.Execute(context.Background(), &Input{
		Dependencies: []string{"anything"},
		Platform:     "saas",
	})
	require.NoError(t, err)

	// only the static platform signals remain
	assert.Equal(t, catalog.Default().SignalsForPlatform("saas"), output.Signals)
}

func TestExecute_FiltersNoneAndCapsAtThree(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(repoJSON("some/repo", 10, 1, "2024-05-30T00:00:00Z")))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)
	_, err := h.Execute(context.Background(), &Input{
		Dependencies: []string{"none", "", "a", "b", "c", "d"},
		Platform:     "web",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, calls)
}

func TestExecute_AlwaysAppendsPlatformSignals(t *testing.T) {
	h := newTestHandler(t, "http://127.0.0.1:0")

	output, err := h.Execute(context.Background(), &Input{
		Dependencies: nil,
		Platform:     "app",
	})
	require.NoError(t, err)

	assert.Equal(t, catalog.Default().SignalsForPlatform("app"), output.Signals)
}

func TestFormatStars(t *testing.T) {
	assert.Equal(t, "999", formatStars(999))
	assert.Equal(t, "3,500", formatStars(3500))
	assert.Equal(t, "1,234,567", formatStars(1234567))
}
