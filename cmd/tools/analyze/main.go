// cmd/tools/analyze/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"blindspot-workers/internal/catalog"
	"blindspot-workers/internal/common/logger"
	"blindspot-workers/internal/models"
	"blindspot-workers/internal/orchestrator"

	ctr "blindspot-workers/internal/workers/enrichment/check-technical-risks"
	fin "blindspot-workers/internal/workers/enrichment/fetch-industry-news"
	fmtr "blindspot-workers/internal/workers/enrichment/fetch-market-trends"
	sc "blindspot-workers/internal/workers/enrichment/search-competitors"
	sfs "blindspot-workers/internal/workers/enrichment/search-failed-startups"
)

// analyze runs a single evaluation from the command line, without a
// broker. Useful for trying rule changes and debugging reports.
func main() {
	inputPath := flag.String("input", "", "Path to a JSON file with the startup input")
	mode := flag.String("mode", "catalog", "Analysis mode: catalog | live")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall analysis timeout")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input file: %v\n", err)
		os.Exit(1)
	}

	var input models.StartupInput
	if err := json.Unmarshal(data, &input); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse input file: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured("warn", "console")
	cat := catalog.Default()

	var lookups orchestrator.Lookups
	if *mode == "live" {
		// No redis cache for one-shot runs.
		lookups = orchestrator.Lookups{
			Competitors:    sc.NewHandler(sc.LoadConfig(), nil, cat, log),
			Failures:       sfs.NewHandler(sfs.LoadConfig(), cat, log),
			Trends:         fmtr.NewHandler(fmtr.LoadConfig(), log),
			TechnicalRisks: ctr.NewHandler(ctr.LoadConfig(), cat, log),
			News:           fin.NewHandler(fin.LoadConfig(), log),
		}
	}

	orch, err := orchestrator.New(cat, lookups, 8*time.Second, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create orchestrator: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var result *models.AnalysisResult
	switch *mode {
	case "live":
		result, err = orch.RunFullAnalysis(ctx, input)
	case "catalog":
		result, err = orch.RunAnalysis(ctx, input)
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s (expected catalog or live)\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	report, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render report: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(report))
}
