// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

func LoadRegistry(path string) (*TaskRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg TaskRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Find returns the task entry for the given task type.
func (r *TaskRegistry) Find(taskType string) (*Task, bool) {
	for i := range r.Tasks {
		if r.Tasks[i].TaskType == taskType {
			return &r.Tasks[i], true
		}
	}
	return nil, false
}

// ValidateInput checks a job payload against the task's input schema.
func (t *Task) ValidateInput(payload []byte) error {
	if t.InputSchema == nil {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(t.InputSchema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid payload for %s: %s", t.TaskType, strings.Join(msgs, "; "))
	}

	return nil
}
