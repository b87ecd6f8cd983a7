package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/workflows"
)

const (
	defaultTemporalHost   = "localhost:7233"
	defaultNamespace      = "default"
	reindexWorkflowType   = "ReindexModel"
	reindexWorkflowPrefix = "reindex-model-"
)

type Config struct {
	TemporalHost string
	Namespace    string
	Since        time.Duration
	Chain        string
	ModelID      uint64
	OutputFile   string // Output markdown file path (optional)
	PageSize     int
	QueryTimeout time.Duration
	MaxRuns      int // Maximum number of runs to collect (0 = unlimited)
}

func main() {
	cfg := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHost,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		fmt.Printf("Error creating Temporal client: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	until := time.Now()
	report := newReport(until.Add(-cfg.Since), until)

	fmt.Printf("Connected to Temporal at %s (namespace: %s)\n", cfg.TemporalHost, cfg.Namespace)
	if err := collect(ctx, c, cfg, report); err != nil {
		fmt.Printf("Error collecting runs: %v\n", err)
		if report.Total == 0 {
			os.Exit(1)
		}
		fmt.Println("Showing partial results")
	}

	fmt.Println()
	report.Print(os.Stdout)

	if cfg.OutputFile != "" {
		if err := writeReportFile(cfg.OutputFile, report); err != nil {
			fmt.Printf("\n⚠️  Warning: Failed to write markdown file: %v\n", err)
		} else {
			fmt.Printf("\n✓ Report written to: %s\n", cfg.OutputFile)
		}
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.TemporalHost, "temporal-host", defaultTemporalHost, "Temporal host address")
	flag.StringVar(&cfg.Namespace, "namespace", defaultNamespace, "Temporal namespace")
	flag.DurationVar(&cfg.Since, "since", 24*time.Hour, "How far back to look")
	flag.StringVar(&cfg.Chain, "chain", "", "Only runs of this chain, e.g. eip155:1 (optional)")
	flag.Uint64Var(&cfg.ModelID, "model-id", 0, "Only runs of this model, requires -chain (optional)")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	flag.IntVar(&cfg.PageSize, "page-size", 1000, "Page size for Temporal queries (max: 1000)")
	flag.IntVar(&cfg.MaxRuns, "max-runs", 10000, "Maximum runs to collect (0 = unlimited)")
	flag.DurationVar(&cfg.QueryTimeout, "query-timeout", 30*time.Second, "Timeout for each Temporal query")

	configFile := flag.String("config", "", "Path to config file (optional)")

	flag.Parse()

	if cfg.PageSize <= 0 || cfg.PageSize > 1000 {
		cfg.PageSize = 1000
	}

	path := *configFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath()); err == nil {
			path = DefaultConfigPath()
		}
	}

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			fmt.Printf("Warning: failed to load config file: %v\n", err)
		} else {
			// flags win over file values
			if cfg.TemporalHost == defaultTemporalHost && fileCfg.TemporalHost != "" {
				cfg.TemporalHost = fileCfg.TemporalHost
			}
			if cfg.Namespace == defaultNamespace && fileCfg.Namespace != "" {
				cfg.Namespace = fileCfg.Namespace
			}
		}
	}

	return cfg
}

// buildQuery returns the visibility query selecting reindex runs of the window
func buildQuery(cfg *Config, since time.Time) string {
	query := fmt.Sprintf("WorkflowType = '%s' AND StartTime >= '%s'", reindexWorkflowType, since.UTC().Format(time.RFC3339))

	switch {
	case cfg.Chain != "" && cfg.ModelID > 0:
		prefix := workflows.ReindexWorkflowID(domain.Chain(cfg.Chain), cfg.ModelID) + "-"
		query += fmt.Sprintf(" AND WorkflowId STARTS_WITH '%s'", prefix)
	case cfg.Chain != "":
		query += fmt.Sprintf(" AND WorkflowId STARTS_WITH '%s%s-'", reindexWorkflowPrefix, cfg.Chain)
	}

	return query
}

func collect(ctx context.Context, c client.Client, cfg *Config, report *Report) error {
	query := buildQuery(cfg, report.Since)

	var nextPageToken []byte
	for {
		queryCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
		resp, err := c.ListWorkflow(queryCtx, &workflowservice.ListWorkflowExecutionsRequest{
			Namespace:     cfg.Namespace,
			Query:         query,
			PageSize:      int32(cfg.PageSize),
			NextPageToken: nextPageToken,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("failed to list workflows: %w", err)
		}

		for _, info := range resp.GetExecutions() {
			report.Add(executionFromInfo(info))
			if cfg.MaxRuns > 0 && report.Total >= cfg.MaxRuns {
				return nil
			}
		}

		nextPageToken = resp.GetNextPageToken()
		if len(nextPageToken) == 0 {
			return nil
		}
	}
}

func writeReportFile(path string, report *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	return report.WriteMarkdown(file)
}
