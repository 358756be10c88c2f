// Package discovery finds DC-related bills not yet in the tracked
// dataset. Three channels run independently and merge into one
// deduplicated candidate set; candidates are then filtered against the
// tracked set, fetched in full, scored, and partitioned into
// auto-add / review / skip tiers.
package discovery

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/dcbills/tracker/internal/billnum"
	"github.com/dcbills/tracker/internal/congress"
	"github.com/dcbills/tracker/internal/dataset"
	"github.com/dcbills/tracker/internal/metrics"
	"github.com/dcbills/tracker/internal/scoring"
	"github.com/dcbills/tracker/pkg/config"
	"github.com/dcbills/tracker/pkg/logger"
)

type Orchestrator struct {
	client *congress.Client
	cfg    *config.Config

	FullScan bool
	DryRun   bool
	Verbose  bool
}

// Evaluated is a scored candidate with everything needed for the
// report and, for the auto-add tier, for dataset persistence.
type Evaluated struct {
	ID            string
	Ref           billnum.Ref
	DisplayNumber string
	Candidate     *scoring.Candidate
	Details       *Details
	Score         int
	Reasons       []string
}

// Report is one discovery run's outcome.
type Report struct {
	Tracked        int
	TotalFound     int
	AlreadyTracked int
	AutoAdd        []Evaluated
	Review         []Evaluated
	Skipped        []Evaluated
	FetchErrors    []string
	Added          int
}

func NewOrchestrator(client *congress.Client, cfg *config.Config) *Orchestrator {
	return &Orchestrator{client: client, cfg: cfg}
}

// Run executes one full discovery pass. Candidates are processed
// strictly sequentially; the client's pacing is the only thing standing
// between a bulk run and the upstream rate limit, so there is no
// parallel fan-out.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	defer func() {
		metrics.RunDuration.WithLabelValues("discover").Observe(time.Since(start).Seconds())
	}()

	doc, err := dataset.Load(o.cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}

	tracked := TrackedSet(doc)
	report := &Report{Tracked: len(tracked)}
	logger.Info("tracking bill identifiers", zap.Int("count", len(tracked)))

	fromDate := o.fromDate()
	if fromDate != "" {
		logger.Info("incremental scan", zap.String("since", fromDate))
	} else {
		logger.Info("full scan", zap.Int("congress", o.client.Congress()))
	}

	all := make(CandidateSet)
	all.Merge(o.committeeChannel(ctx))
	all.Merge(o.titleScanChannel(ctx, fromDate))
	all.Merge(o.subjectChannel(ctx))
	report.TotalFound = len(all)
	logger.Info("candidates across all channels", zap.Int("count", len(all)))

	fresh := make(CandidateSet)
	for id, candidate := range all {
		if _, ok := tracked[id]; ok {
			o.verbosef("already tracked: %s %s", billnum.FormatType(candidate.BillType), candidate.Number)
			report.AlreadyTracked++
			continue
		}
		fresh[id] = candidate
	}
	logger.Info("candidate filter",
		zap.Int("alreadyTracked", report.AlreadyTracked),
		zap.Int("new", len(fresh)),
	)

	if len(fresh) == 0 {
		if err := o.saveLastRun(); err != nil {
			return nil, err
		}
		return report, nil
	}

	o.evaluate(ctx, fresh, report)

	if !o.DryRun && len(report.AutoAdd) > 0 {
		if err := o.persist(report); err != nil {
			return nil, err
		}
	}

	if err := o.saveLastRun(); err != nil {
		return nil, err
	}
	return report, nil
}

// evaluate fetches details for each new candidate, scores it, and
// partitions by tier. Candidates are visited in stable id order so
// output ordering is reproducible across runs.
func (o *Orchestrator) evaluate(ctx context.Context, fresh CandidateSet, report *Report) {
	ids := make([]string, 0, len(fresh))
	for id := range fresh {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, id := range ids {
		candidate := fresh[id]
		ref := billnum.Ref{Type: candidate.BillType, Number: candidate.Number}
		display := ref.Display()

		logger.Info("evaluating candidate",
			zap.Int("n", i+1),
			zap.Int("of", len(ids)),
			zap.String("bill", display),
		)
		o.verbosef("title: %s, sources: %v", candidate.Title, candidate.Sources)

		details, err := o.fetchDetails(ctx, ref)
		if err != nil {
			logger.Warn("could not fetch details, skipping candidate",
				zap.String("bill", display),
				zap.Error(err),
			)
			report.FetchErrors = append(report.FetchErrors, display)
			continue
		}

		result := scoring.Score(*candidate, scoring.Details{
			Title:      details.Title,
			Summary:    details.Summary,
			Subjects:   details.Subjects,
			Committees: details.Committees,
		})

		entry := Evaluated{
			ID:            id,
			Ref:           ref,
			DisplayNumber: display,
			Candidate:     candidate,
			Details:       details,
			Score:         result.Score,
			Reasons:       result.Reasons,
		}

		switch tierFor(result.Score, o.cfg.Scoring.AutoAddThreshold, o.cfg.Scoring.ReviewThreshold) {
		case "auto-add":
			report.AutoAdd = append(report.AutoAdd, entry)
		case "review":
			report.Review = append(report.Review, entry)
		default:
			report.Skipped = append(report.Skipped, entry)
		}
	}
}

// tierFor partitions a score against the auto-add and review
// thresholds. Negative scores fall through to skip like any other
// below-threshold value.
func tierFor(score, autoAdd, review int) string {
	switch {
	case score >= autoAdd:
		return "auto-add"
	case score >= review:
		return "review"
	default:
		return "skip"
	}
}

// persist appends the auto-add tier to the dataset. The document is
// re-read immediately before writing to shrink the window for
// clobbering a concurrent manual edit; the copy loaded at run start is
// not reused.
func (o *Orchestrator) persist(report *Report) error {
	doc, err := dataset.Load(o.cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("re-read dataset before write: %w", err)
	}

	today := dataset.Today(o.cfg.Dataset.TimeZone)
	for _, entry := range report.AutoAdd {
		bill := BuildEntry(entry.Ref, entry.Details, entry.Score, o.client.Congress(), today)
		doc.Bills = append(doc.Bills, bill)
		metrics.BillsAutoAdded.Inc()
		logger.Info("auto-added bill",
			zap.String("bill", entry.DisplayNumber),
			zap.String("title", entry.Details.Title),
			zap.Int("score", entry.Score),
		)
	}

	doc.LastUpdated = today
	if err := dataset.Save(o.cfg.Dataset.Path, doc); err != nil {
		return err
	}
	report.Added = len(report.AutoAdd)
	return nil
}

// fromDate computes the incremental-scan lower bound: empty for a full
// scan, the previous run date when one is recorded, otherwise the
// configured default window back from today.
func (o *Orchestrator) fromDate() string {
	if o.FullScan {
		return ""
	}
	if lastRun, ok := dataset.LastRun(o.cfg.Dataset.RunStatePath); ok {
		o.verbosef("using last run date: %s", lastRun)
		return lastRun
	}
	return time.Now().AddDate(0, 0, -o.cfg.Discovery.DefaultWindowDays).Format("2006-01-02")
}

func (o *Orchestrator) saveLastRun() error {
	return dataset.SaveLastRun(o.cfg.Dataset.RunStatePath, time.Now().Format("2006-01-02"))
}

func (o *Orchestrator) verbosef(format string, args ...interface{}) {
	if o.Verbose {
		logger.Info(fmt.Sprintf(format, args...))
	}
}
