// cmd/tools/worker-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"blindspot-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Category     string
	Description  string
	InputFields  string
	OutputFields string
	Timeout      string
}

// parseSchema extracts properties from a JSON schema object
func parseSchema(schemaObj map[string]interface{}) map[string]interface{} {
	if props, exists := schemaObj["properties"]; exists {
		if properties, ok := props.(map[string]interface{}); ok {
			return properties
		}
	}
	return map[string]interface{}{}
}

// goTypeFromJSONType maps JSON schema types to Go types
func goTypeFromJSONType(jsonType interface{}) string {
	if jt, ok := jsonType.(string); ok {
		switch jt {
		case "string":
			return "string"
		case "integer":
			return "int"
		case "number":
			return "float64"
		case "boolean":
			return "bool"
		case "object":
			return "map[string]interface{}"
		case "array":
			return "[]interface{}"
		}
	}
	return "interface{}"
}

// generateStructFields generates Go struct field definitions from schema properties
func generateStructFields(properties map[string]interface{}) string {
	names := make([]string, 0, len(properties))
	for prop := range properties {
		names = append(names, prop)
	}
	sort.Strings(names)

	var fields []string
	for _, prop := range names {
		propDetails, ok := properties[prop].(map[string]interface{})
		if !ok {
			continue
		}
		goType := goTypeFromJSONType(propDetails["type"])
		fields = append(fields, fmt.Sprintf("\t%s %s `json:%q`", upperFirst(prop), goType, prop))
	}
	if len(fields) == 0 {
		return "\t// TODO: define fields, no schema in registry for this task"
	}
	return strings.Join(fields, "\n")
}

// upperFirst makes the first character uppercase
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const configTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ .Timeout }},
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
{{ .InputFields }}
}

type Output struct {
{{ .OutputFields }}
}
`

const handlerTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"encoding/json"
	"fmt"

	"blindspot-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Handler implements {{ .Name }}.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey": job.Key,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "EXECUTION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	return nil, fmt.Errorf("not implemented")
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const testTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"blindspot-workers/internal/common/logger"

	"github.com/stretchr/testify/require"
)

func TestExecute_NotImplemented(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)
}
`

func main() {
	taskID := flag.String("task", "", "Task ID from registry (e.g., calculate-risk-score)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "configs/task-registry.json", "Path to the task registry JSON file")
	flag.Parse()

	if *taskID == "" {
		fmt.Println("Error: -task is required")
		flag.Usage()
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Failed to load registry %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	task, ok := reg.Find(*taskID)
	if !ok {
		fmt.Printf("Task '%s' not found in registry %s\n", *taskID, *registryPath)
		os.Exit(1)
	}

	timeout := `10 * time.Second`
	if task.Timeout != "" {
		timeout = fmt.Sprintf("%s // from registry: %s", timeout, task.Timeout)
	}

	data := WorkerData{
		Name:         task.DisplayName,
		PackageName:  strings.ReplaceAll(task.ID, "-", ""),
		TaskType:     task.TaskType,
		Category:     task.Category,
		Description:  task.Description,
		InputFields:  generateStructFields(parseSchema(task.InputSchema)),
		OutputFields: generateStructFields(parseSchema(task.OutputSchema)),
		Timeout:      timeout,
	}

	workerDir := filepath.Join(*outputDir, task.Category, task.ID)
	if err := os.MkdirAll(workerDir, 0755); err != nil {
		fmt.Printf("Failed to create worker directory: %v\n", err)
		os.Exit(1)
	}

	files := map[string]string{
		"config.go":       configTemplate,
		"models.go":       modelsTemplate,
		"handler.go":      handlerTemplate,
		"handler_test.go": testTemplate,
	}

	for name, tmpl := range files {
		path := filepath.Join(workerDir, name)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s: already exists\n", path)
			continue
		}
		if err := renderTo(path, name, tmpl, data); err != nil {
			fmt.Printf("Failed to generate %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", path)
	}

	fmt.Printf("Worker scaffold for '%s' ready in %s\n", task.TaskType, workerDir)
	fmt.Println("Next: implement execute(), fill in models, and register the worker in cmd/worker-manager.")
}

func renderTo(path, name, tmplText string, data WorkerData) error {
	tmpl, err := template.New(name).Parse(tmplText)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}
