// Package scoring assigns relevance scores to candidate bills. Score is
// a pure function: identical input always yields an identical result.
package scoring

import (
	"fmt"
	"regexp"
	"strings"
)

// Candidate is a bill surfaced by discovery. Sources lists every
// channel that found it; multiplicity is itself a relevance signal.
type Candidate struct {
	BillType string
	Number   string
	Title    string
	Sources  []string
}

// Details are the fetched fields a candidate is scored on.
type Details struct {
	Title      string
	Summary    string
	Subjects   []string
	Committees []string
}

// Result is the total score with one human-readable reason per
// triggered rule, in evaluation order.
type Result struct {
	Score   int
	Reasons []string
}

var (
	titleStrongRE = regexp.MustCompile(`(?i)district\s+of\s+columbia`)
	titleLooseRE  = regexp.MustCompile(`\bD\.C\.\b`)
	// The loose title tier accepts a bare DC token without the trailing
	// exclusions; the negative-signal penalty handles DC Comics and
	// electrical senses afterward.
	titleTokenRE = regexp.MustCompile(`\bDC\b`)
	titleWashRE  = regexp.MustCompile(`(?i)Washington,?\s+D\.?C\.?`)
	homeRuleRE   = regexp.MustCompile(`(?i)home\s+rule`)
)

var dcCommitteeNames = []string{
	"oversight",
	"homeland security and governmental affairs",
	"hsgac",
}

// Score computes the additive relevance score for a candidate. Rules
// are independently triggerable; only the title rule is tiered (the
// strong match suppresses the loose one). The negative-signal penalty
// is applied after all positive signals and can drive the total
// negative; there is no clamp.
func Score(c Candidate, d Details) Result {
	var result Result

	// Title contains "District of Columbia" (+30), or a looser DC
	// reference (+20).
	if titleStrongRE.MatchString(d.Title) {
		result.add(30, `Title: "District of Columbia" (+30)`)
	} else if titleLooseRE.MatchString(d.Title) || titleTokenRE.MatchString(d.Title) || titleWashRE.MatchString(d.Title) {
		result.add(20, "Title: DC reference (+20)")
	}

	// "District of Columbia" legislative subject (+25).
	for _, subject := range d.Subjects {
		if titleStrongRE.MatchString(subject) {
			result.add(25, `Subject: "District of Columbia" (+25)`)
			break
		}
	}

	// Referred to a DC-relevant committee (+15).
	if committeeRelevant(d.Committees) {
		result.add(15, "Committee: DC-relevant (+15)")
	}

	// DC mentions in the summary: +5 each, capped at +20.
	mentions := 0
	for _, p := range positivePatterns {
		mentions += p.count(d.Summary)
	}
	if summaryScore := min(mentions*5, 20); summaryScore > 0 {
		result.add(summaryScore, fmt.Sprintf("Summary: %d DC mentions (+%d)", mentions, summaryScore))
	}

	// "home rule" in summary or title (+15).
	if homeRuleRE.MatchString(d.Summary) || homeRuleRE.MatchString(d.Title) {
		result.add(15, `Mentions "home rule" (+15)`)
	}

	// Negative signals (-30).
	if anyNegative(d.Title, d.Summary) {
		result.add(-30, "Negative signal: likely not DC-targeted (-30)")
	}

	// Found by more than one discovery channel (+5).
	if len(c.Sources) > 1 {
		result.add(5, fmt.Sprintf("Multi-channel: %d sources (+5)", len(c.Sources)))
	}

	return result
}

func (r *Result) add(points int, reason string) {
	r.Score += points
	r.Reasons = append(r.Reasons, reason)
}

func committeeRelevant(committees []string) bool {
	for _, committee := range committees {
		lower := strings.ToLower(committee)
		for _, name := range dcCommitteeNames {
			if strings.Contains(lower, name) {
				return true
			}
		}
	}
	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
