// internal/workers/report/store-analysis/handler.go
package storeanalysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"blindspot-workers/internal/common/errors"
	"blindspot-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "store-analysis"

	insertAnalysis = `
		INSERT INTO analyses (id, user_id, startup_name, mode, decision, total_risk, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
)

// Indexer pushes a report document into the search index.
type Indexer interface {
	Index(ctx context.Context, index, docID string, body []byte) error
}

type Handler struct {
	config  *Config
	db      *sql.DB
	cache   *redis.Client
	indexer Indexer
	logger  logger.Logger
}

// NewHandler builds the worker. Cache and indexer are optional; only
// the relational store is required.
func NewHandler(config *Config, db *sql.DB, cache *redis.Client, indexer Indexer, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		db:      db,
		cache:   cache,
		indexer: indexer,
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, string(errors.ErrCodeAnalysisStoreFailed), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute persists the report. Postgres is the source of truth; the
// redis last-report pointer and the search index are best effort.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("userId is required")
	}

	resultJSON, err := json.Marshal(input.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	analysisID := uuid.New().String()
	_, err = h.db.ExecContext(ctx, insertAnalysis,
		analysisID,
		input.UserID,
		input.Result.Input.StartupName,
		string(input.Result.Mode),
		input.Result.Decision.Decision,
		input.Result.RiskScore.Total,
		resultJSON,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}

	h.cacheLastReport(ctx, input.UserID, resultJSON)

	indexed := false
	if h.indexer != nil {
		if err := h.indexer.Index(ctx, h.config.IndexName, analysisID, resultJSON); err != nil {
			h.logger.Warn("report indexing failed", map[string]interface{}{
				"analysisId": analysisID,
				"error":      err.Error(),
			})
		} else {
			indexed = true
		}
	}

	h.logger.Info("analysis stored", map[string]interface{}{
		"analysisId": analysisID,
		"userId":     input.UserID,
		"indexed":    indexed,
	})

	return &Output{
		AnalysisID: analysisID,
		Stored:     true,
		Indexed:    indexed,
	}, nil
}

func (h *Handler) cacheLastReport(ctx context.Context, userID string, resultJSON []byte) {
	if h.cache == nil {
		return
	}
	key := fmt.Sprintf("report:last:%s", userID)
	if err := h.cache.Set(ctx, key, resultJSON, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("last-report cache write failed", map[string]interface{}{
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
