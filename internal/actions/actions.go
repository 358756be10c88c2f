// Package actions extracts structured signals from free-text
// legislative action records: committee activity flags, chamber passage
// events, and roll-call vote numbers.
package actions

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dcbills/tracker/internal/congress"
)

// Flags are monotonic OR-reductions over the full action list; order of
// the input does not matter.
type Flags struct {
	HasCommitteeHearing bool
	HasCommitteeMarkup  bool
	HasFloorVote        bool
}

// Analyze derives activity flags from the action list.
func Analyze(list []congress.Action) Flags {
	var flags Flags
	for _, action := range list {
		text := strings.ToLower(action.Text)
		actionType := strings.ToLower(action.Type)

		if strings.Contains(text, "hearing") || strings.Contains(actionType, "hearing") {
			flags.HasCommitteeHearing = true
		}
		if strings.Contains(text, "markup") || strings.Contains(text, "ordered to be reported") {
			flags.HasCommitteeMarkup = true
		}
		if strings.Contains(text, "floor") || strings.Contains(text, "vote") ||
			strings.Contains(text, "passed") || strings.Contains(text, "failed") {
			flags.HasFloorVote = true
		}
	}
	return flags
}

// ChamberPassage records one detected passage event.
type ChamberPassage struct {
	Date     string
	Text     string
	RollCall string // empty when no roll-call number could be extracted
}

// Passage holds the most recent detected passage evidence per chamber.
type Passage struct {
	House  *ChamberPassage
	Senate *ChamberPassage
}

// Stage derives the coarse lifecycle marker from detected passage
// evidence. This is a priority table recomputed fresh from the full
// action list, not a state machine with history.
func (p Passage) Stage() string {
	switch {
	case p.House != nil && p.Senate != nil:
		return "passed-both"
	case p.House != nil:
		return "passed-house"
	case p.Senate != nil:
		return "passed-senate"
	default:
		return ""
	}
}

// Roll-call extraction: an ordered list of patterns tried in sequence,
// first match wins.
var rollCallPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Roll no\.\s*(\d+)`),
	regexp.MustCompile(`(?i)recorded vote:\s*(\d+)`),
	regexp.MustCompile(`(?i)Yeas and Nays:\s*(\d+)`),
}

// ExtractRollCall pulls a roll-call vote number out of action text, or
// "" when none of the known phrasings match.
func ExtractRollCall(text string) string {
	for _, re := range rollCallPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// DetectPassage scans actions most-recent-first for chamber passage
// phrases. Only the first match per chamber is kept, so the most recent
// evidence wins when a chamber has passed a bill more than once
// (e.g. after a conference re-vote).
func DetectPassage(list []congress.Action) Passage {
	sorted := make([]congress.Action, len(list))
	copy(sorted, list)
	// Stable sort keeps the original relative order for equal dates.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ActionDate > sorted[j].ActionDate
	})

	var passage Passage
	for i := range sorted {
		action := &sorted[i]
		if passage.House == nil && isHousePassage(action.Text) {
			passage.House = &ChamberPassage{
				Date:     action.ActionDate,
				Text:     action.Text,
				RollCall: ExtractRollCall(action.Text),
			}
		}
		if passage.Senate == nil && isSenatePassage(action.Text) {
			passage.Senate = &ChamberPassage{
				Date:     action.ActionDate,
				Text:     action.Text,
				RollCall: ExtractRollCall(action.Text),
			}
		}
		if passage.House != nil && passage.Senate != nil {
			break
		}
	}
	return passage
}

func isHousePassage(text string) bool {
	// "Passed/agreed to in House" is a different procedural posture
	// (agreed-to resolutions), not bill passage.
	if strings.Contains(text, "Passed/agreed to in House") {
		return false
	}
	return strings.Contains(text, "On passage Passed by recorded vote") ||
		strings.Contains(text, "On passage Passed by the Yeas and Nays") ||
		strings.Contains(text, "Passed House")
}

func isSenatePassage(text string) bool {
	// Near-miss false positives: "Received in the Senate" is routine
	// message traffic, "passed in Senate" appears in summaries of House
	// messages.
	if strings.Contains(text, "Received in the Senate") ||
		strings.Contains(text, "passed in Senate") {
		return false
	}
	return strings.Contains(text, "Passed Senate")
}

// StatusFromAction classifies a bill's latest action text into a coarse
// legislative state. Used by the monitor's priority cascade.
func StatusFromAction(text string) string {
	action := strings.ToLower(text)

	switch {
	case strings.Contains(action, "became public law") || strings.Contains(action, "signed by president"):
		return "ENACTED"
	case strings.Contains(action, "passed senate") && strings.Contains(action, "passed house"):
		return "PASSED_BOTH"
	case strings.Contains(action, "passed senate") || strings.Contains(action, "passed house"):
		return "PASSED_ONE_CHAMBER"
	case strings.Contains(action, "reported") || strings.Contains(action, "committee"):
		return "IN_COMMITTEE"
	case strings.Contains(action, "introduced"):
		return "INTRODUCED"
	default:
		return "UNKNOWN"
	}
}
