package scoring

import "regexp"

// pattern is a keyword signal. exclude, when set, disqualifies a match
// whose trailing context matches it (standing in for the lookahead the
// regexp package does not support).
type pattern struct {
	re      *regexp.Regexp // as used for title matching
	reCI    *regexp.Regexp // case-insensitive variant for summary counting
	exclude *regexp.Regexp // anchored at the text following a match
}

func newPattern(expr string, caseInsensitive bool, excludeExpr string) pattern {
	p := pattern{
		reCI: regexp.MustCompile(`(?i)` + expr),
	}
	if caseInsensitive {
		p.re = p.reCI
	} else {
		p.re = regexp.MustCompile(expr)
	}
	if excludeExpr != "" {
		p.exclude = regexp.MustCompile(`(?i)^` + excludeExpr)
	}
	return p
}

// matches reports whether s contains at least one qualifying match.
func (p pattern) matches(s string) bool {
	return p.countWith(p.re, s) > 0
}

// count returns the number of qualifying matches, case-insensitively.
func (p pattern) count(s string) int {
	return p.countWith(p.reCI, s)
}

func (p pattern) countWith(re *regexp.Regexp, s string) int {
	locs := re.FindAllStringIndex(s, -1)
	if locs == nil {
		return 0
	}
	if p.exclude == nil {
		return len(locs)
	}
	n := 0
	for _, loc := range locs {
		if !p.exclude.MatchString(s[loc[1]:]) {
			n++
		}
	}
	return n
}

// Positive signals: phrases that indicate a bill targets the District
// of Columbia. The bare "DC" token excludes DC Comics and
// direct-current electrical senses.
var positivePatterns = []pattern{
	newPattern(`district\s+of\s+columbia`, true, ""),
	newPattern(`\bD\.C\.\b`, false, ""),
	newPattern(`\bDC\b`, false, `\s*(Comics?|power|current|voltage|motor|circuit|Universe)`),
	newPattern(`home\s+rule`, true, ""),
	newPattern(`DC\s+Council`, true, ""),
	newPattern(`DC\s+Mayor`, true, ""),
	newPattern(`DC\s+government`, true, ""),
	newPattern(`Washington,?\s+D\.?C\.?`, true, ""),
}

// Negative signals: phrases that indicate the bill is probably about
// something else entirely.
var negativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)washington\s+state`),
	regexp.MustCompile(`(?i)DC\s+Comics`),
	regexp.MustCompile(`(?i)DC\s+(power|current|voltage|motor|circuit)`),
	regexp.MustCompile(`(?i)direct\s+current`),
}

// TitleRelevant reports whether a bill title passes the discovery
// title scan: at least one positive signal and no negative signal.
func TitleRelevant(title string) bool {
	anyPositive := false
	for _, p := range positivePatterns {
		if p.matches(title) {
			anyPositive = true
			break
		}
	}
	if !anyPositive {
		return false
	}
	for _, re := range negativePatterns {
		if re.MatchString(title) {
			return false
		}
	}
	return true
}

func anyNegative(texts ...string) bool {
	for _, re := range negativePatterns {
		for _, s := range texts {
			if re.MatchString(s) {
				return true
			}
		}
	}
	return false
}
