package monitor

import (
	"fmt"

	"github.com/dcbills/tracker/internal/actions"
	"github.com/dcbills/tracker/internal/dataset"
)

// PriorityInfo is a priority tier with its provenance and the rule that
// produced it.
type PriorityInfo struct {
	Priority string
	Source   string
	Reason   string
}

// CalculatePriority assigns a tier by precedence, not by weighted
// score: the first matching rule wins. Manual and FreeDC overrides sit
// above everything the API can say about a bill.
func CalculatePriority(bill dataset.Bill, flags actions.Flags, cosponsors int, simplified string) PriorityInfo {
	if bill.Priority == "high" && bill.PrioritySource == "manual" {
		return PriorityInfo{Priority: "high", Source: "manual", Reason: "Manually flagged"}
	}
	if bill.PrioritySource == "freedc" {
		return PriorityInfo{Priority: "high", Source: "freedc", Reason: "Listed on FreeDC"}
	}

	if flags.HasFloorVote {
		return PriorityInfo{Priority: "high", Source: "legislative", Reason: "Floor vote occurred"}
	}
	if flags.HasCommitteeMarkup {
		return PriorityInfo{Priority: "high", Source: "legislative", Reason: "Committee markup held"}
	}
	if flags.HasCommitteeHearing {
		return PriorityInfo{Priority: "high", Source: "legislative", Reason: "Committee hearing held"}
	}
	if cosponsors >= 20 {
		return PriorityInfo{Priority: "high", Source: "legislative", Reason: fmt.Sprintf("%d cosponsors", cosponsors)}
	}

	if cosponsors >= 5 {
		return PriorityInfo{Priority: "medium", Source: "legislative", Reason: fmt.Sprintf("%d cosponsors", cosponsors)}
	}
	if simplified == "IN_COMMITTEE" {
		return PriorityInfo{Priority: "medium", Source: "legislative", Reason: "In committee"}
	}

	if simplified == "INTRODUCED" {
		return PriorityInfo{Priority: "watching", Source: "legislative", Reason: "Recently introduced"}
	}

	return PriorityInfo{Priority: "low", Source: "legislative", Reason: "No significant activity"}
}
