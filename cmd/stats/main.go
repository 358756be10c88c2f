package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dcbills/tracker/internal/dataset"
	"github.com/dcbills/tracker/internal/stats"
	"github.com/dcbills/tracker/pkg/config"
	appLogger "github.com/dcbills/tracker/pkg/logger"
)

func main() {
	withSponsors := pflag.Bool("sponsors", false, "also regenerate the sponsor lookup from the roster CSV")
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

	doc, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		appLogger.Error("failed to load dataset", zap.Error(err))
		os.Exit(1)
	}

	s := stats.Build(doc)
	if err := stats.Write(cfg.Dataset.StatsPath, s); err != nil {
		appLogger.Error("failed to write stats", zap.Error(err))
		os.Exit(1)
	}

	appLogger.Info("generated stats",
		zap.String("path", cfg.Dataset.StatsPath),
		zap.Int("totalBills", s.TotalBills),
		zap.Int("pending", s.PendingBills),
		zap.Int("passed", s.PassedBills),
		zap.String("lastUpdated", s.LastUpdated),
	)

	if *withSponsors {
		sponsors, err := stats.BuildSponsors(cfg.Dataset.RosterCSVPath)
		if err != nil {
			appLogger.Error("failed to build sponsor lookup", zap.Error(err))
			os.Exit(1)
		}
		if err := stats.WriteSponsors(cfg.Dataset.SponsorsPath, sponsors); err != nil {
			appLogger.Error("failed to write sponsor lookup", zap.Error(err))
			os.Exit(1)
		}
		appLogger.Info("generated sponsor lookup",
			zap.String("path", cfg.Dataset.SponsorsPath),
			zap.Int("entries", len(sponsors)),
		)
	}
}
