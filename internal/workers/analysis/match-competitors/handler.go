// internal/workers/analysis/match-competitors/handler.go
package matchcompetitors

import (
	"context"
	"encoding/json"
	"fmt"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "match-competitors"

	platformPick = 2
	industryPick = 3
	hiddenPick   = 2
	maxMatches   = 7
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	output, err := h.execute(context.Background(), &input)
	if err != nil {
		h.failJob(client, job, "COMPETITOR_MATCH_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute assembles the catalog match: a slice of the platform table, a
// slice of the industry table, and the hidden competitors that apply to
// every idea. Names deduplicate with the first occurrence winning.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	in := input.StartupInput

	var picked []models.Competitor
	seen := make(map[string]bool)
	add := func(comps []models.Competitor, limit int) {
		for i, c := range comps {
			if i >= limit || len(picked) >= maxMatches {
				return
			}
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			picked = append(picked, c)
		}
	}

	add(h.catalog.PlatformCompetitors[in.Platform], platformPick)
	add(h.catalog.IndustryCompetitors[in.Industry], industryPick)
	add(h.catalog.HiddenCompetitors, hiddenPick)

	h.logger.Info("competitors matched", map[string]interface{}{
		"startupName": in.StartupName,
		"platform":    in.Platform,
		"industry":    in.Industry,
		"count":       len(picked),
	})

	return &Output{Competitors: picked}, nil
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
