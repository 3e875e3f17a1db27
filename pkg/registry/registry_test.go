// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistry = `{
	"version": "1.0.0",
	"lastUpdated": "2025-01-15",
	"tasks": [
		{
			"id": "validate-startup-input",
			"displayName": "Validate Startup Input",
			"category": "analysis",
			"taskType": "validate-startup-input",
			"implementationStatus": "implemented",
			"inputSchema": {
				"type": "object",
				"required": ["startupName", "idea", "industry"],
				"properties": {
					"startupName": {"type": "string", "minLength": 1},
					"idea": {"type": "string", "minLength": 10},
					"industry": {"type": "string"}
				}
			},
			"errorCodes": ["INPUT_VALIDATION_FAILED"],
			"timeout": "10s",
			"retries": 0,
			"tags": ["analysis", "validation"]
		},
		{
			"id": "search-competitors",
			"displayName": "Search Competitors",
			"category": "enrichment",
			"taskType": "search-competitors",
			"implementationStatus": "implemented",
			"errorCodes": ["COMPETITOR_SEARCH_FAILED", "COMPETITOR_SEARCH_TIMEOUT"],
			"timeout": "8s",
			"retries": 2,
			"tags": ["enrichment", "external-api"]
		}
	]
}`

func writeTestRegistry(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "task-registry.json")
	require.NoError(t, os.WriteFile(path, []byte(testRegistry), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", reg.Version)
	require.Len(t, reg.Tasks, 2)
	assert.Equal(t, "validate-startup-input", reg.Tasks[0].TaskType)
	assert.Equal(t, 2, reg.Tasks[1].Retries)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry("/nonexistent/task-registry.json")
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	task, ok := reg.Find("search-competitors")
	require.True(t, ok)
	assert.Equal(t, "enrichment", task.Category)

	_, ok = reg.Find("unknown-task")
	assert.False(t, ok)
}

func TestValidateInput(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	task, ok := reg.Find("validate-startup-input")
	require.True(t, ok)

	valid := []byte(`{"startupName": "PayFlow", "idea": "automated invoicing for freelancers", "industry": "fintech"}`)
	assert.NoError(t, task.ValidateInput(valid))

	missing := []byte(`{"startupName": "PayFlow"}`)
	err = task.ValidateInput(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payload for validate-startup-input")

	tooShort := []byte(`{"startupName": "PayFlow", "idea": "short", "industry": "fintech"}`)
	assert.Error(t, task.ValidateInput(tooShort))
}

func TestValidateInput_NoSchemaAcceptsAnything(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	task, ok := reg.Find("search-competitors")
	require.True(t, ok)
	assert.NoError(t, task.ValidateInput([]byte(`{"anything": true}`)))
}
