package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dcbills/tracker/internal/congress"
	"github.com/dcbills/tracker/internal/metrics"
	"github.com/dcbills/tracker/internal/monitor"
	"github.com/dcbills/tracker/pkg/config"
	appLogger "github.com/dcbills/tracker/pkg/logger"
)

func main() {
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
		fmt.Fprintln(os.Stderr, "  2. Sign up for a free API key")
		fmt.Fprintln(os.Stderr, "  3. Set environment variable: export CONGRESS_API_KEY=your_key_here")
		os.Exit(1)
	}

	metrics.Init()

	client := congress.NewClient(cfg.Congress)
	mon := monitor.New(client, cfg)

	report, err := mon.Run(context.Background())
	if err != nil {
		appLogger.Error("monitoring failed", zap.Error(err))
		os.Exit(1)
	}

	if url := cfg.Metrics.PushGatewayURL; url != "" {
		if err := metrics.PushToGateway(url, "dcbills_monitor"); err != nil {
			appLogger.Warn("failed to push metrics", zap.Error(err))
		}
	}

	printReport(report)
}

func printReport(report *monitor.Report) {
	fmt.Println()
	fmt.Println("BILL STATUS REPORT")
	fmt.Println("================================================================================")
	fmt.Printf("Total bills checked: %d\n", report.Checked)
	fmt.Printf("Successful checks: %d\n", len(report.Changes))
	fmt.Printf("Errors: %d\n", len(report.Errors))

	byPriority := map[string][]monitor.Change{}
	for _, change := range report.Changes {
		byPriority[change.Priority] = append(byPriority[change.Priority], change)
	}

	fmt.Printf("\nHIGH PRIORITY BILLS (%d)\n", len(byPriority["high"]))
	for _, change := range byPriority["high"] {
		fmt.Printf("\n  %s: %s\n", change.BillNumber, change.Bill)
		fmt.Printf("  Status: %s\n", change.Status)
		fmt.Printf("  Priority reason: %s\n", change.PriorityReason)
		fmt.Printf("  Latest: %s (%s)\n", change.LatestAction, change.LatestActionDate)
		fmt.Printf("  Cosponsors: %d\n", change.Cosponsors)
		if change.HasHearing {
			fmt.Println("  Committee hearing held")
		}
		if change.HasMarkup {
			fmt.Println("  Committee markup held")
		}
		if change.HasFloorVote {
			fmt.Println("  Floor vote occurred")
		}
		fmt.Printf("  URL: %s\n", change.URL)
	}

	fmt.Printf("\nMEDIUM PRIORITY BILLS (%d)\n", len(byPriority["medium"]))
	for _, change := range byPriority["medium"] {
		fmt.Printf("  %s: %s (%s, %d cosponsors)\n", change.BillNumber, change.Bill, change.Status, change.Cosponsors)
	}

	fmt.Printf("\nWATCHING (%d)\n", len(byPriority["watching"]))
	for _, change := range byPriority["watching"] {
		fmt.Printf("  %s: %s\n", change.BillNumber, change.Bill)
	}

	if len(report.Errors) > 0 {
		fmt.Println("\nERRORS")
		for _, e := range report.Errors {
			fmt.Printf("  %s\n", e)
		}
	}
}
