// Package dataset is the file-backed document store for tracked bills.
// The whole document is read into memory at process start and written
// back in full at defined checkpoints; each write is a durable commit
// point.
package dataset

import (
	"encoding/json"
	"strings"
)

// Stage values. An empty stage means the bill has not passed either
// chamber. Stages only move forward; see MergeStage.
const (
	StagePassedHouse  = "passed-house"
	StagePassedSenate = "passed-senate"
	StagePassedBoth   = "passed-both"
	StageEnacted      = "enacted"
)

// Document is the persisted top-level structure. Categories belongs to
// the presentation layer and is carried through untouched.
type Document struct {
	LastUpdated  string          `json:"lastUpdated"`
	Categories   json.RawMessage `json:"categories,omitempty"`
	Bills        []Bill          `json:"bills"`
	Riders       []Bill          `json:"riders"`
	SupportBills []Bill          `json:"supportBills"`
}

// Bill is one tracked bill record.
type Bill struct {
	ID              string   `json:"id"`
	BillNumbers     []string `json:"billNumbers"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Sponsors        []string `json:"sponsors,omitempty"`
	Category        string   `json:"category,omitempty"`
	Position        string   `json:"position,omitempty"` // oppose | support
	Type            string   `json:"type,omitempty"`     // bill | rider
	Priority        string   `json:"priority,omitempty"` // high | medium | low | watching
	PrioritySource  string   `json:"prioritySource,omitempty"`
	FiscalYear      string   `json:"fiscalYear,omitempty"`
	Highlight       string   `json:"highlight,omitempty"`
	AttackType      string   `json:"attackType,omitempty"`
	Provisional     bool     `json:"provisional,omitempty"`
	AutoDiscovered  bool     `json:"autoDiscovered,omitempty"`
	DiscoveredDate  string   `json:"discoveredDate,omitempty"`
	RelevanceScore  int      `json:"relevanceScore,omitempty"`
	CongressGovLink string   `json:"congressGovLink,omitempty"`
	Status          *Status  `json:"status,omitempty"`
	Passage         *Passage `json:"passage,omitempty"`
}

// Status is per-bill legislative state maintained by the monitor.
type Status struct {
	Stage               string   `json:"stage"`
	LastAction          string   `json:"lastAction,omitempty"`
	LastActionDate      string   `json:"lastActionDate,omitempty"`
	HasCommitteeHearing bool     `json:"hasCommitteeHearing"`
	HasCommitteeMarkup  bool     `json:"hasCommitteeMarkup"`
	HasFloorVote        bool     `json:"hasFloorVote"`
	Cosponsors          int      `json:"cosponsors"`
	Committees          []string `json:"committees"`
}

// MarshalJSON writes an empty stage as an explicit null, the shape the
// persisted dataset has always had. Unmarshalling needs no counterpart:
// a JSON null into a string field is a no-op.
func (s *Status) MarshalJSON() ([]byte, error) {
	type alias Status
	aux := struct {
		Stage *string `json:"stage"`
		*alias
	}{alias: (*alias)(s)}
	if s.Stage != "" {
		aux.Stage = &s.Stage
	}
	return json.Marshal(aux)
}

// Passage carries per-chamber vote records. Once written these are
// never overwritten; see MergePassage.
type Passage struct {
	House  *ChamberPassage `json:"house,omitempty"`
	Senate *ChamberPassage `json:"senate,omitempty"`
}

// ChamberPassage is one chamber's passage event.
type ChamberPassage struct {
	Date string `json:"date,omitempty"`
	Vote *Vote  `json:"vote,omitempty"`
}

// Vote is a roll-call tally with the major-party breakdown.
type Vote struct {
	Yeas    int     `json:"yeas"`
	Nays    int     `json:"nays"`
	ByParty ByParty `json:"byParty"`
}

type ByParty struct {
	Republican PartyVotes `json:"republican"`
	Democrat   PartyVotes `json:"democrat"`
}

type PartyVotes struct {
	Yeas int `json:"yeas"`
	Nays int `json:"nays"`
}

// HasPassed reports whether a stage marks a bill as having passed at
// least one chamber. This prefix rule is the sole passage criterion
// used anywhere in the system.
func HasPassed(stage string) bool {
	return stage == StageEnacted || strings.HasPrefix(stage, "passed-")
}

// AllBills returns bills, riders and support bills as one slice, in
// document order.
func (d *Document) AllBills() []Bill {
	all := make([]Bill, 0, len(d.Bills)+len(d.Riders)+len(d.SupportBills))
	all = append(all, d.Bills...)
	all = append(all, d.Riders...)
	all = append(all, d.SupportBills...)
	return all
}
