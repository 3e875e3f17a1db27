// internal/workers/enrichment/search-competitors/handler_test.go
package searchcompetitors

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"Abstract": "Notion is an all-in-one workspace for notes and project management used by millions of teams",
	"AbstractURL": "https://notion.so",
	"Heading": "Notion",
	"RelatedTopics": [
		{"Text": "Trello - a visual project management startup founded in 2011 for team task boards", "FirstURL": "https://trello.com"},
		{"Text": "Asana is a work management platform for teams", "FirstURL": "https://asana.com"},
		{"Text": "", "FirstURL": "", "Topics": [
			{"Text": "Todoist - task management app", "FirstURL": "https://todoist.com"},
			{"Text": "Things - personal task manager", "FirstURL": "https://culturedcode.com"},
			{"Text": "OmniFocus - GTD app", "FirstURL": "https://omnigroup.com"}
		]}
	]
}`

func newTestHandler(t *testing.T, baseURL string, cache *redis.Client) *Handler {
	config := LoadConfig()
	config.BaseURL = baseURL
	config.Timeout = 2 * time.Second
	return NewHandler(config, cache, catalog.Default(), logger.NewTestLogger(t))
}

func TestExecute_ParsesInstantAnswerResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "format=json")
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, nil)
	output, err := h.Execute(context.Background(), &Input{Idea: "team task management", Industry: "productivity"})
	require.NoError(t, err)

	assert.Equal(t, "DuckDuckGo Search API", output.Source)
	require.NotEmpty(t, output.Competitors)

	// the abstract entry is prepended as the market leader
	leader := output.Competitors[0]
	assert.Equal(t, "Notion", leader.Name)
	assert.Equal(t, "direct", leader.Type)
	assert.Equal(t, "high", leader.Threat)

	names := make(map[string]bool)
	for _, c := range output.Competitors {
		names[c.Name] = true
	}
	assert.True(t, names["Trello"])
	assert.True(t, names["Asana"])
	// only the first two nested topics are taken
	assert.True(t, names["Todoist"])
	assert.True(t, names["Things"])
	assert.False(t, names["OmniFocus"])
}

func TestExecute_ExtractsFoundedYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, nil)
	output, err := h.Execute(context.Background(), &Input{Idea: "task boards", Industry: "productivity"})
	require.NoError(t, err)

	for _, c := range output.Competitors {
		if c.Name == "Trello" {
			assert.Equal(t, "2011", c.Founded)
			return
		}
	}
	t.Fatal("Trello not found in results")
}

func TestExecute_NonOKStatusReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, nil)
	_, err := h.Execute(context.Background(), &Input{Idea: "x", Industry: "fintech"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search API returned 502")
}

func TestExecute_EmptyResponseReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RelatedTopics": []}`))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, nil)
	_, err := h.Execute(context.Background(), &Input{Idea: "x", Industry: "fintech"})
	require.Error(t, err)
}

func TestExecute_CachesResults(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, cache)
	input := &Input{Idea: "team task management", Industry: "productivity"}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.Competitors, second.Competitors)
}

func TestExecute_CacheErrorDegradesToAPI(t *testing.T) {
	cache, mock := redismock.NewClientMock()
	mock.ExpectGet("competitors:productivity:team task management").
		SetErr(errors.New("connection refused"))
	mock.Regexp().
		ExpectSet("competitors:productivity:team task management", `.+`, time.Hour).
		SetVal("OK")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, cache)
	output, err := h.Execute(context.Background(), &Input{Idea: "team task management", Industry: "productivity"})
	require.NoError(t, err)
	assert.NotEmpty(t, output.Competitors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFallback_UsesIndustryCatalog(t *testing.T) {
	h := newTestHandler(t, "http://127.0.0.1:0", nil)

	output := h.fallback("fintech")
	assert.Equal(t, "Fallback Data", output.Source)
	require.NotEmpty(t, output.Competitors)
	assert.Equal(t, "Stripe", output.Competitors[0].Name)
}

func TestExtractCompanyName(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Trello - a visual project management tool", "Trello"},
		{"Asana is a work management platform", "Asana"},
		{"Monday.com offers a work OS", "Monday.com"},
		{"some lowercase description here", "some lowercase"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractCompanyName(tt.text), tt.text)
	}
}

func TestCalculateThreatLevel(t *testing.T) {
	query := "team task management startup"
	assert.Equal(t, "high", calculateThreatLevel("a team task management platform", query))
	assert.Equal(t, "medium", calculateThreatLevel("task management app", query))
	assert.Equal(t, "low", calculateThreatLevel("unrelated product", query))
}
