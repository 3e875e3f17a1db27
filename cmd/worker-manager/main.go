// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/config"
	"blindspot-workers/internal/common/database"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/common/metrics"
	"blindspot-workers/internal/common/observability"
	"blindspot-workers/internal/orchestrator"

	// Analysis Workers (8)
	crs "blindspot-workers/internal/workers/analysis/calculate-risk-score"
	ea "blindspot-workers/internal/workers/analysis/extract-assumptions"
	gai "blindspot-workers/internal/workers/analysis/generate-action-items"
	md "blindspot-workers/internal/workers/analysis/make-decision"
	mc "blindspot-workers/internal/workers/analysis/match-competitors"
	mfp "blindspot-workers/internal/workers/analysis/match-failure-patterns"
	ra "blindspot-workers/internal/workers/analysis/run-analysis"
	vsi "blindspot-workers/internal/workers/analysis/validate-startup-input"

	// Enrichment Workers (5)
	ctr "blindspot-workers/internal/workers/enrichment/check-technical-risks"
	fin "blindspot-workers/internal/workers/enrichment/fetch-industry-news"
	fmtr "blindspot-workers/internal/workers/enrichment/fetch-market-trends"
	sc "blindspot-workers/internal/workers/enrichment/search-competitors"
	sfs "blindspot-workers/internal/workers/enrichment/search-failed-startups"

	// Report Workers (2)
	srn "blindspot-workers/internal/workers/report/send-report-notification"
	sa "blindspot-workers/internal/workers/report/store-analysis"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	cat := catalog.Default()

	// --- START: Register ALL 15 Workers ---

	// --- 1. Analysis Workers (7 single-step) ---
	if config.IsWorkerEnabled(cfg, vsi.TaskType) {
		handler, err := vsi.NewHandler(
			&vsi.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, vsi.TaskType).Timeout),
			},
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create validate-startup-input handler", zap.Error(err))
		}
		startWorker(zeebeClient, vsi.TaskType, config.GetWorkerConfig(cfg, vsi.TaskType), handler.Handle, zapLog)
	}

	if config.IsWorkerEnabled(cfg, ea.TaskType) {
		handler := ea.NewHandler(
			&ea.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, ea.TaskType).Timeout),
			},
			log,
		)
		startWorker(zeebeClient, ea.TaskType, config.GetWorkerConfig(cfg, ea.TaskType), handler.Handle, zapLog)
	}

	if config.IsWorkerEnabled(cfg, crs.TaskType) {
		handler := crs.NewHandler(
			&crs.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, crs.TaskType).Timeout),
			},
			log,
		)
		startWorker(zeebeClient, crs.TaskType, config.GetWorkerConfig(cfg, crs.TaskType), handler.Handle, zapLog)
	}

	if config.IsWorkerEnabled(cfg, mc.TaskType) {
		handler := mc.NewHandler(
			&mc.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, mc.TaskType).Timeout),
			},
			cat, log,
		)
		startWorker(zeebeClient, mc.TaskType, config.GetWorkerConfig(cfg, mc.TaskType), handler.Handle, zapLog)
	}

	if config.IsWorkerEnabled(cfg, mfp.TaskType) {
		handler := mfp.NewHandler(
			&mfp.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, mfp.TaskType).Timeout),
			},
			cat, log,
		)
		startWorker(zeebeClient, mfp.TaskType, config.GetWorkerConfig(cfg, mfp.TaskType), handler.Handle, zapLog)
	}

	if config.IsWorkerEnabled(cfg, md.TaskType) {
		handler := md.NewHandler(
			&md.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, md.TaskType).Timeout),
			},
			log,
		)
		startWorker(zeebeClient, md.TaskType, config.GetWorkerConfig(cfg, md.TaskType), handler.Handle, zapLog)
	}

	if config.IsWorkerEnabled(cfg, gai.TaskType) {
		handler := gai.NewHandler(
			&gai.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, gai.TaskType).Timeout),
			},
			log,
		)
		startWorker(zeebeClient, gai.TaskType, config.GetWorkerConfig(cfg, gai.TaskType), handler.Handle, zapLog)
	}

	// --- 2. Enrichment Workers (5) ---
	// Handlers are built unconditionally so the run-analysis orchestrator
	// can reuse them even when their standalone workers are disabled.
	scHandler := sc.NewHandler(
		&sc.Config{
			BaseURL:    cfg.APIs.DuckDuckGo.BaseURL,
			ProxyURL:   cfg.APIs.DuckDuckGo.ProxyURL,
			Timeout:    config.GetDuration(cfg.APIs.DuckDuckGo.Timeout),
			CacheTTL:   time.Duration(cfg.Analysis.CacheTTL) * time.Second,
			MaxResults: 10,
		},
		redis.Client, cat, log,
	)
	if config.IsWorkerEnabled(cfg, sc.TaskType) {
		startWorker(zeebeClient, sc.TaskType, config.GetWorkerConfig(cfg, sc.TaskType), scHandler.Handle, zapLog)
	}

	sfsHandler := sfs.NewHandler(
		&sfs.Config{
			BaseURL:    cfg.APIs.HackerNews.BaseURL,
			Timeout:    config.GetDuration(cfg.APIs.HackerNews.Timeout),
			MaxResults: 5,
		},
		cat, log,
	)
	if config.IsWorkerEnabled(cfg, sfs.TaskType) {
		startWorker(zeebeClient, sfs.TaskType, config.GetWorkerConfig(cfg, sfs.TaskType), sfsHandler.Handle, zapLog)
	}

	fmtrHandler := fmtr.NewHandler(
		&fmtr.Config{
			BaseURL:     cfg.APIs.DuckDuckGo.BaseURL,
			Timeout:     config.GetDuration(cfg.APIs.DuckDuckGo.Timeout),
			MaxKeywords: 5,
		},
		log,
	)
	if config.IsWorkerEnabled(cfg, fmtr.TaskType) {
		startWorker(zeebeClient, fmtr.TaskType, config.GetWorkerConfig(cfg, fmtr.TaskType), fmtrHandler.Handle, zapLog)
	}

	ctrHandler := ctr.NewHandler(
		&ctr.Config{
			BaseURL: cfg.APIs.GitHub.BaseURL,
			Timeout: config.GetDuration(cfg.APIs.GitHub.Timeout),
			MaxDeps: 3,
		},
		cat, log,
	)
	if config.IsWorkerEnabled(cfg, ctr.TaskType) {
		startWorker(zeebeClient, ctr.TaskType, config.GetWorkerConfig(cfg, ctr.TaskType), ctrHandler.Handle, zapLog)
	}

	finHandler := fin.NewHandler(
		&fin.Config{
			BaseURL:    cfg.APIs.HackerNews.BaseURL,
			Timeout:    config.GetDuration(cfg.APIs.HackerNews.Timeout),
			MaxSignals: 5,
		},
		log,
	)
	if config.IsWorkerEnabled(cfg, fin.TaskType) {
		startWorker(zeebeClient, fin.TaskType, config.GetWorkerConfig(cfg, fin.TaskType), finHandler.Handle, zapLog)
	}

	// --- 3. Pipeline Worker (1) ---
	if config.IsWorkerEnabled(cfg, ra.TaskType) {
		orch, err := orchestrator.New(
			cat,
			orchestrator.Lookups{
				Competitors:    scHandler,
				Failures:       sfsHandler,
				Trends:         fmtrHandler,
				TechnicalRisks: ctrHandler,
				News:           finHandler,
			},
			config.GetDuration(cfg.Analysis.LookupTimeout),
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create orchestrator", zap.Error(err))
		}

		handler := ra.NewHandler(
			&ra.Config{
				Timeout:     config.GetDuration(config.GetWorkerConfig(cfg, ra.TaskType).Timeout),
				DefaultMode: cfg.Analysis.DefaultMode,
			},
			orch, log,
		)
		startWorker(zeebeClient, ra.TaskType, config.GetWorkerConfig(cfg, ra.TaskType), handler.Handle, zapLog)
	}

	// --- 4. Report Workers (2) ---
	if config.IsWorkerEnabled(cfg, sa.TaskType) {
		handler := sa.NewHandler(
			&sa.Config{
				Timeout:   config.GetDuration(config.GetWorkerConfig(cfg, sa.TaskType).Timeout),
				IndexName: "blindspot-reports",
				CacheTTL:  24 * time.Hour,
			},
			pg.DB, redis.Client, esClient, log,
		)
		startWorker(zeebeClient, sa.TaskType, config.GetWorkerConfig(cfg, sa.TaskType), handler.Handle, zapLog)
	}

	if config.IsWorkerEnabled(cfg, srn.TaskType) {
		handler, err := srn.NewHandler(
			&srn.Config{
				Timeout:              config.GetDuration(config.GetWorkerConfig(cfg, srn.TaskType).Timeout),
				EmailEnabled:         cfg.Notifications.Email.Enabled,
				FromEmail:            cfg.Notifications.Email.FromEmail,
				SMSEnabled:           cfg.Notifications.SMS.Enabled,
				SMSDecisionThreshold: cfg.Notifications.SMS.DecisionThreshold,
				AWSRegion:            cfg.Notifications.AWS.Region,
			},
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-report-notification handler", zap.Error(err))
		}
		startWorker(zeebeClient, srn.TaskType, config.GetWorkerConfig(cfg, srn.TaskType), handler.Handle, zapLog)
	}

	zapLog.Info("All 15 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	instrumented := func(jobClient worker.JobClient, job entities.Job) {
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		start := time.Now()
		handlerFunc(jobClient, job)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
		metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
		metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(instrumented).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
