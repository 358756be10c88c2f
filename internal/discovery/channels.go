package discovery

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dcbills/tracker/internal/billnum"
	"github.com/dcbills/tracker/internal/metrics"
	"github.com/dcbills/tracker/internal/scoring"
	"github.com/dcbills/tracker/pkg/logger"
)

// CandidateSet is a discovery channel's output, keyed by canonical bill
// id. Merging concatenates source labels, never overwrites, so a bill
// found by several channels carries every provenance label.
type CandidateSet map[string]*scoring.Candidate

// Merge folds other into s, appending sources on collision.
func (s CandidateSet) Merge(other CandidateSet) {
	for id, candidate := range other {
		if existing, ok := s[id]; ok {
			existing.Sources = append(existing.Sources, candidate.Sources...)
		} else {
			s[id] = candidate
		}
	}
}

func (s CandidateSet) add(billType, number, title, source string) {
	ref := billnum.Ref{Type: billType, Number: number}
	id := ref.ID()
	if existing, ok := s[id]; ok {
		existing.Sources = append(existing.Sources, source)
		return
	}
	s[id] = &scoring.Candidate{
		BillType: billType,
		Number:   number,
		Title:    title,
		Sources:  []string{source},
	}
}

// committeeChannel lists bills referred to each DC-relevant committee,
// keeping only those from the current congress. Per-committee failures
// are logged and skipped; the channel degrades rather than aborts.
func (o *Orchestrator) committeeChannel(ctx context.Context) CandidateSet {
	candidates := make(CandidateSet)

	for _, committee := range o.cfg.Discovery.Committees {
		o.verbosef("checking %s (%s)", committee.Name, committee.Code)

		bills, err := o.client.CommitteeBills(ctx, committee.Code, o.cfg.Discovery.PageLimit)
		if err != nil {
			logger.Warn("committee query failed",
				zap.String("committee", committee.Code),
				zap.Error(err),
			)
			continue
		}

		for _, bill := range bills {
			if bill.Congress != o.client.Congress() {
				continue
			}
			billType := strings.ToLower(bill.Type)
			if billType == "" || bill.Number == "" {
				continue
			}
			candidates.add(billType, bill.Number, bill.Title, committee.Name)
			metrics.CandidatesDiscovered.WithLabelValues("committee").Inc()
		}
	}

	logger.Info("committee channel complete", zap.Int("candidates", len(candidates)))
	return candidates
}

// titleScanChannel pages through each bill type sorted by most recent
// update, keeping titles that match a DC-positive pattern and no
// negative pattern. fromDate, when non-empty, makes the scan
// incremental. Pagination stops at the configured offset ceiling to
// bound worst-case run time.
func (o *Orchestrator) titleScanChannel(ctx context.Context, fromDate string) CandidateSet {
	candidates := make(CandidateSet)
	limit := o.cfg.Discovery.PageLimit

	for _, billType := range o.cfg.Discovery.BillTypes {
		o.verbosef("scanning %s bills", billType)

		for offset := 0; ; offset += limit {
			bills, err := o.client.ListBills(ctx, billType, offset, limit, fromDate)
			if err != nil {
				logger.Warn("title scan page failed",
					zap.String("billType", billType),
					zap.Int("offset", offset),
					zap.Error(err),
				)
				break
			}
			if len(bills) == 0 {
				break
			}

			for _, bill := range bills {
				if bill.Number == "" {
					continue
				}
				if scoring.TitleRelevant(bill.Title) {
					candidates.add(billType, bill.Number, bill.Title, "title-scan")
					metrics.CandidatesDiscovered.WithLabelValues("title-scan").Inc()
				}
			}

			if len(bills) < limit || offset >= o.cfg.Discovery.MaxOffset {
				break
			}
		}
	}

	logger.Info("title scan channel complete", zap.Int("candidates", len(candidates)))
	return candidates
}

// subjectChannel performs no independent discovery: subject matching is
// scored during the detail-fetch phase instead, because the upstream
// API has no subject-filtered bill listing. Subject-based discovery of
// bills not already surfaced by the other two channels therefore does
// not happen. Kept as an explicit channel so the gap is visible.
func (o *Orchestrator) subjectChannel(ctx context.Context) CandidateSet {
	logger.Info("subject channel: matching deferred to detail-fetch scoring phase")
	return make(CandidateSet)
}
