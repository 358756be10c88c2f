// Package billnum parses free-text congressional bill citations such as
// "H.R. 5214" or "s.j.res.45" into canonical identifiers.
package billnum

import (
	"fmt"
	"regexp"
	"strings"
)

// Bill type codes as used by the Congress.gov API.
const (
	TypeHR      = "hr"
	TypeS       = "s"
	TypeHJRes   = "hjres"
	TypeSJRes   = "sjres"
	TypeHConRes = "hconres"
	TypeSConRes = "sconres"
)

// Ref is a parsed bill citation.
type Ref struct {
	Type   string // one of the Type* constants
	Number string
}

var citationRE = regexp.MustCompile(`(?i)(H\.R\.|S\.|H\.J\.Res\.|S\.J\.Res\.|H\.Con\.Res\.|S\.Con\.Res\.)\s*(\d+)`)

var displayByType = map[string]string{
	TypeHR:      "H.R.",
	TypeS:       "S.",
	TypeHJRes:   "H.J.Res.",
	TypeSJRes:   "S.J.Res.",
	TypeHConRes: "H.Con.Res.",
	TypeSConRes: "S.Con.Res.",
}

var slugByType = map[string]string{
	TypeHR:      "house-bill",
	TypeS:       "senate-bill",
	TypeHJRes:   "house-joint-resolution",
	TypeSJRes:   "senate-joint-resolution",
	TypeHConRes: "house-concurrent-resolution",
	TypeSConRes: "senate-concurrent-resolution",
}

// ParseError reports a citation that matched none of the known bill
// prefixes. Parse itself signals this with ok=false; ParseError exists
// for callers that need to carry the failure in an error list.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized bill citation: %q", e.Input)
}

// Parse extracts the first recognizable bill citation from s. It is
// case-insensitive and tolerates whitespace variation between the type
// prefix and the number. A failed parse is an expected outcome for
// free-text input, so it is reported via ok, not an error.
func Parse(s string) (Ref, bool) {
	m := citationRE.FindStringSubmatch(s)
	if m == nil {
		return Ref{}, false
	}

	prefix := strings.ToLower(m[1])
	var billType string
	switch {
	case strings.Contains(prefix, "h.r."):
		billType = TypeHR
	case strings.Contains(prefix, "s.") && !strings.Contains(prefix, "res"):
		billType = TypeS
	case strings.Contains(prefix, "h.j.res"):
		billType = TypeHJRes
	case strings.Contains(prefix, "s.j.res"):
		billType = TypeSJRes
	case strings.Contains(prefix, "h.con.res"):
		billType = TypeHConRes
	case strings.Contains(prefix, "s.con.res"):
		billType = TypeSConRes
	default:
		return Ref{}, false
	}

	return Ref{Type: billType, Number: m[2]}, true
}

// ID returns the canonical identifier, e.g. "hr2056". This is the
// unique key used for dedup and lookup across the dataset.
func (r Ref) ID() string {
	return r.Type + r.Number
}

// Display returns the punctuated citation, e.g. "H.R. 2056". It is the
// exact inverse of Parse for canonical input.
func (r Ref) Display() string {
	return FormatType(r.Type) + " " + r.Number
}

// Chamber returns "house" or "senate" for the originating chamber.
func (r Ref) Chamber() string {
	switch r.Type {
	case TypeHR, TypeHJRes, TypeHConRes:
		return "house"
	default:
		return "senate"
	}
}

// FormatType maps a bill type code to its display label.
func FormatType(billType string) string {
	if label, ok := displayByType[billType]; ok {
		return label
	}
	return strings.ToUpper(billType)
}

// Slug maps a bill type code to the congress.gov URL path segment.
func Slug(billType string) string {
	if slug, ok := slugByType[billType]; ok {
		return slug
	}
	return billType
}
