package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dcbills/tracker/internal/congress"
	"github.com/dcbills/tracker/internal/discovery"
	"github.com/dcbills/tracker/internal/metrics"
	"github.com/dcbills/tracker/pkg/config"
	appLogger "github.com/dcbills/tracker/pkg/logger"
)

func main() {
	fullScan := pflag.Bool("full", false, "ignore the incremental window and scan the whole congress")
	dryRun := pflag.Bool("dry-run", false, "compute results without persisting auto-adds")
	verbose := pflag.Bool("verbose", false, "emit per-candidate reasoning")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	if err := cfg.RequireAPIKey(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "To get an API key:")
		fmt.Fprintln(os.Stderr, "  1. Visit: https://api.congress.gov/sign-up/")
		fmt.Fprintln(os.Stderr, "  2. Set environment variable: export CONGRESS_API_KEY=your_key_here")
		os.Exit(1)
	}

	mode := "incremental"
	if *fullScan {
		mode = "full scan"
	}
	appLogger.Info("starting bill discovery",
		zap.String("mode", mode),
		zap.Bool("dryRun", *dryRun),
		zap.Bool("verbose", *verbose),
	)

	metrics.Init()

	client := congress.NewClient(cfg.Congress)
	orch := discovery.NewOrchestrator(client, cfg)
	orch.FullScan = *fullScan
	orch.DryRun = *dryRun
	orch.Verbose = *verbose

	report, err := orch.Run(context.Background())
	if err != nil {
		appLogger.Error("discovery failed", zap.Error(err))
		os.Exit(1)
	}

	if url := cfg.Metrics.PushGatewayURL; url != "" {
		if err := metrics.PushToGateway(url, "dcbills_discover"); err != nil {
			appLogger.Warn("failed to push metrics", zap.Error(err))
		}
	}

	printReport(report, *dryRun, *verbose)
}

func printReport(report *discovery.Report, dryRun, verbose bool) {
	fmt.Println()
	fmt.Println("DISCOVERY REPORT")
	fmt.Println("============================================================")
	fmt.Printf("Tracked identifiers: %d\n", report.Tracked)
	fmt.Printf("Candidates found: %d (already tracked: %d)\n", report.TotalFound, report.AlreadyTracked)

	if len(report.AutoAdd) > 0 {
		fmt.Printf("\nAUTO-ADD (%d bills):\n", len(report.AutoAdd))
		for _, entry := range report.AutoAdd {
			fmt.Printf("  %s (score %d)\n", entry.DisplayNumber, entry.Score)
			fmt.Printf("    %s\n", entry.Details.Title)
			for _, reason := range entry.Reasons {
				fmt.Printf("    - %s\n", reason)
			}
		}
	}

	if len(report.Review) > 0 {
		fmt.Printf("\nNEEDS REVIEW (%d bills):\n", len(report.Review))
		for _, entry := range report.Review {
			fmt.Printf("  %s (score %d): %s\n", entry.DisplayNumber, entry.Score, entry.Details.Title)
			for _, reason := range entry.Reasons {
				fmt.Printf("    - %s\n", reason)
			}
		}
	}

	if verbose && len(report.Skipped) > 0 {
		fmt.Printf("\nSKIPPED (%d bills):\n", len(report.Skipped))
		for _, entry := range report.Skipped {
			fmt.Printf("  %s (score %d): %s\n", entry.DisplayNumber, entry.Score, entry.Details.Title)
		}
	}

	fmt.Printf("\nSummary: %d auto-add | %d review | %d skipped\n",
		len(report.AutoAdd), len(report.Review), len(report.Skipped))

	if dryRun && len(report.AutoAdd) > 0 {
		fmt.Println("\nDRY RUN - no bills were added to the dataset")
	} else if report.Added > 0 {
		fmt.Printf("\nSaved %d new bills to the dataset\n", report.Added)
	}
}
