// Package monitor checks every tracked bill against the Congress.gov
// API, detects passage events and vote tallies, recomputes priority,
// and merges the results back into the persisted dataset.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dcbills/tracker/internal/actions"
	"github.com/dcbills/tracker/internal/billnum"
	"github.com/dcbills/tracker/internal/congress"
	"github.com/dcbills/tracker/internal/dataset"
	"github.com/dcbills/tracker/internal/metrics"
	"github.com/dcbills/tracker/pkg/config"
	"github.com/dcbills/tracker/pkg/logger"
)

type Monitor struct {
	client *congress.Client
	cfg    *config.Config
}

// Change is one bill's observed state after a check, recorded in the
// run report and the history log.
type Change struct {
	ID               string   `json:"id"`
	Bill             string   `json:"bill"`
	BillNumber       string   `json:"billNumber"`
	Status           string   `json:"status"`
	Stage            string   `json:"stage,omitempty"`
	LatestAction     string   `json:"latestAction"`
	LatestActionDate string   `json:"latestActionDate,omitempty"`
	URL              string   `json:"url"`
	Priority         string   `json:"priority"`
	PrioritySource   string   `json:"prioritySource"`
	PriorityReason   string   `json:"priorityReason"`
	Cosponsors       int      `json:"cosponsorsCount"`
	HasHearing       bool     `json:"hasCommitteeHearing"`
	HasMarkup        bool     `json:"hasCommitteeMarkup"`
	HasFloorVote     bool     `json:"hasFloorVote"`
	Committees       []string `json:"committees,omitempty"`
	IntroducedDate   string   `json:"introducedDate,omitempty"`
}

// Report is one monitor run's outcome.
type Report struct {
	RunID   string
	Checked int
	Changes []Change
	Errors  []string
}

// checkResult is everything fetched and derived for one bill before it
// is merged into the dataset.
type checkResult struct {
	detail     *congress.BillDetail
	flags      actions.Flags
	stage      string
	passage    *dataset.Passage
	cosponsors int
	committees []string
	simplified string
	url        string
}

func New(client *congress.Client, cfg *config.Config) *Monitor {
	return &Monitor{client: client, cfg: cfg}
}

// Run checks every bill in document order, strictly sequentially, and
// writes the merged dataset plus a history entry. lastUpdated advances
// on every run even when no bill content changed.
func (m *Monitor) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	defer func() {
		metrics.RunDuration.WithLabelValues("monitor").Observe(time.Since(start).Seconds())
	}()

	doc, err := dataset.Load(m.cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.NewString()}
	logger.Info("starting bill monitoring",
		zap.String("runId", report.RunID),
		zap.Int("bills", len(doc.Bills)),
	)

	for i := range doc.Bills {
		bill := &doc.Bills[i]
		report.Checked++
		metrics.BillsChecked.Inc()

		if len(bill.BillNumbers) == 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: no bill numbers", bill.ID))
			continue
		}
		citation := bill.BillNumbers[0]

		logger.Info("checking bill",
			zap.Int("n", i+1),
			zap.Int("of", len(doc.Bills)),
			zap.String("bill", citation),
		)

		ref, ok := billnum.Parse(citation)
		if !ok {
			err := &billnum.ParseError{Input: citation}
			logger.Warn("skipping bill", zap.Error(err))
			report.Errors = append(report.Errors, err.Error())
			continue
		}

		result, err := m.check(ctx, ref)
		if err != nil {
			if congress.IsNotFound(err) {
				logger.Warn("bill not found in API", zap.String("bill", citation))
			} else {
				logger.Error("bill check failed", zap.String("bill", citation), zap.Error(err))
			}
			report.Errors = append(report.Errors, citation)
			continue
		}

		priority := CalculatePriority(*bill, result.flags, result.cosponsors, result.simplified)
		applyResult(bill, result, priority)

		report.Changes = append(report.Changes, Change{
			ID:               bill.ID,
			Bill:             bill.Title,
			BillNumber:       citation,
			Status:           result.simplified,
			Stage:            bill.Status.Stage,
			LatestAction:     result.detail.LatestAction.Text,
			LatestActionDate: result.detail.LatestAction.ActionDate,
			URL:              result.url,
			Priority:         priority.Priority,
			PrioritySource:   priority.Source,
			PriorityReason:   priority.Reason,
			Cosponsors:       result.cosponsors,
			HasHearing:       result.flags.HasCommitteeHearing,
			HasMarkup:        result.flags.HasCommitteeMarkup,
			HasFloorVote:     result.flags.HasFloorVote,
			Committees:       result.committees,
			IntroducedDate:   result.detail.IntroducedDate,
		})

		logger.Info("priority",
			zap.String("bill", citation),
			zap.String("priority", priority.Priority),
			zap.String("reason", priority.Reason),
		)
	}

	doc.LastUpdated = dataset.Today(m.cfg.Dataset.TimeZone)
	if err := dataset.Save(m.cfg.Dataset.Path, doc); err != nil {
		return nil, err
	}

	entry := HistoryEntry{
		RunID:     report.RunID,
		Timestamp: time.Now().Format(time.RFC3339),
		Changes:   report.Changes,
		Errors:    report.Errors,
	}
	if err := AppendHistory(m.cfg.Dataset.HistoryPath, entry, m.cfg.Dataset.HistoryLimit); err != nil {
		logger.Error("failed to save history", zap.Error(err))
	}

	logger.Info("monitoring complete",
		zap.Int("checked", report.Checked),
		zap.Int("changes", len(report.Changes)),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

// check fetches one bill's current state. The core detail fetch is the
// only fatal one; actions and cosponsors degrade to empty defaults.
func (m *Monitor) check(ctx context.Context, ref billnum.Ref) (*checkResult, error) {
	detail, err := m.client.BillDetail(ctx, ref)
	if err != nil {
		return nil, err
	}

	result := &checkResult{
		detail:     detail,
		simplified: actions.StatusFromAction(detail.LatestAction.Text),
		url: fmt.Sprintf("https://www.congress.gov/bill/%dth-congress/%s/%s",
			m.client.Congress(), billnum.Slug(ref.Type), ref.Number),
	}

	acts, err := m.client.Actions(ctx, ref)
	if err != nil {
		logger.Warn("could not fetch actions", zap.String("bill", ref.ID()), zap.Error(err))
	}
	result.flags = actions.Analyze(acts)

	passage := actions.DetectPassage(acts)
	result.stage = passage.Stage()
	if result.simplified == "ENACTED" {
		result.stage = dataset.StageEnacted
	}
	result.passage = m.fetchVotes(ctx, ref, passage)

	if count, err := m.client.CosponsorCount(ctx, ref); err == nil {
		result.cosponsors = count
	} else {
		logger.Warn("could not fetch cosponsors", zap.String("bill", ref.ID()), zap.Error(err))
	}

	if committees, err := m.client.Committees(ctx, ref); err == nil {
		result.committees = committees
	}

	return result, nil
}

// fetchVotes turns detected passage events into persisted passage
// records, fetching the roll-call tally for each chamber that has one.
// A failed vote fetch keeps the passage date and drops only the tally.
func (m *Monitor) fetchVotes(ctx context.Context, ref billnum.Ref, passage actions.Passage) *dataset.Passage {
	if passage.House == nil && passage.Senate == nil {
		return nil
	}

	result := &dataset.Passage{}
	if passage.House != nil {
		result.House = m.chamberRecord(ctx, ref, "house", passage.House)
	}
	if passage.Senate != nil {
		result.Senate = m.chamberRecord(ctx, ref, "senate", passage.Senate)
	}
	return result
}

func (m *Monitor) chamberRecord(ctx context.Context, ref billnum.Ref, chamber string, event *actions.ChamberPassage) *dataset.ChamberPassage {
	record := &dataset.ChamberPassage{Date: event.Date}
	if event.RollCall == "" {
		return record
	}

	tally, err := m.client.RollCallVote(ctx, chamber, event.RollCall)
	if err != nil {
		logger.Warn("could not fetch roll-call vote",
			zap.String("bill", ref.ID()),
			zap.String("chamber", chamber),
			zap.String("rollCall", event.RollCall),
			zap.Error(err),
		)
		return record
	}

	record.Vote = &dataset.Vote{
		Yeas: tally.Yeas,
		Nays: tally.Nays,
		ByParty: dataset.ByParty{
			Republican: dataset.PartyVotes{Yeas: tally.RepYeas, Nays: tally.RepNays},
			Democrat:   dataset.PartyVotes{Yeas: tally.DemYeas, Nays: tally.DemNays},
		},
	}
	return record
}

// applyResult merges a check into the bill record. Stage moves only
// forward and vote records are first-write-wins; everything else
// reflects the latest observation.
func applyResult(bill *dataset.Bill, result *checkResult, priority PriorityInfo) {
	if bill.Status == nil {
		bill.Status = &dataset.Status{}
	}

	bill.Status.Stage = dataset.MergeStage(bill.Status.Stage, result.stage)
	bill.Status.LastAction = result.detail.LatestAction.Text
	bill.Status.LastActionDate = result.detail.LatestAction.ActionDate
	bill.Status.HasCommitteeHearing = result.flags.HasCommitteeHearing
	bill.Status.HasCommitteeMarkup = result.flags.HasCommitteeMarkup
	bill.Status.HasFloorVote = result.flags.HasFloorVote
	bill.Status.Cosponsors = result.cosponsors
	if len(result.committees) > 0 {
		bill.Status.Committees = result.committees
	}

	bill.Passage = dataset.MergePassage(bill.Passage, result.passage)

	// Manual and FreeDC priorities are preserved by the cascade itself,
	// which returns them unchanged.
	bill.Priority = priority.Priority
	bill.PrioritySource = priority.Source
}
