package discovery

import (
	"context"

	"go.uber.org/zap"

	"github.com/dcbills/tracker/internal/billnum"
	"github.com/dcbills/tracker/internal/congress"
	"github.com/dcbills/tracker/pkg/logger"
)

// Details are the fully fetched fields for one candidate.
type Details struct {
	Title            string
	Sponsors         []string
	LatestAction     string
	LatestActionDate string
	IntroducedDate   string
	Committees       []string
	Subjects         []string
	Summary          string
	Cosponsors       int
	CongressURL      string
}

// fetchDetails gathers everything a candidate is scored on. Only the
// primary detail fetch is fatal for the candidate; each sub-resource
// degrades to an empty default on failure so one flaky endpoint never
// discards a candidate.
func (o *Orchestrator) fetchDetails(ctx context.Context, ref billnum.Ref) (*Details, error) {
	detail, err := o.client.BillDetail(ctx, ref)
	if err != nil {
		return nil, err
	}

	d := &Details{
		Title:            detail.Title,
		Sponsors:         detail.Sponsors,
		LatestAction:     detail.LatestAction.Text,
		LatestActionDate: detail.LatestAction.ActionDate,
		IntroducedDate:   detail.IntroducedDate,
		CongressURL:      detail.URL,
	}

	if subjects, err := o.client.Subjects(ctx, ref); err == nil {
		d.Subjects = subjects
	} else {
		o.logDegraded(ref, "subjects", err)
	}

	if summary, err := o.client.Summary(ctx, ref); err == nil {
		d.Summary = summary
	} else {
		o.logDegraded(ref, "summary", err)
	}

	if count, err := o.client.CosponsorCount(ctx, ref); err == nil {
		d.Cosponsors = count
	} else {
		o.logDegraded(ref, "cosponsors", err)
	}

	// The main bill endpoint returns a committees reference object, not
	// the list, so this always goes through the sub-resource.
	if committees, err := o.client.Committees(ctx, ref); err == nil {
		d.Committees = committees
	} else {
		o.logDegraded(ref, "committees", err)
	}

	return d, nil
}

func (o *Orchestrator) logDegraded(ref billnum.Ref, field string, err error) {
	if congress.IsNotFound(err) {
		return
	}
	logger.Debug("sub-fetch degraded to default",
		zap.String("bill", ref.ID()),
		zap.String("field", field),
		zap.Error(err),
	)
}
