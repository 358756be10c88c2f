package discovery

import (
	"fmt"

	"github.com/dcbills/tracker/internal/billnum"
	"github.com/dcbills/tracker/internal/dataset"
)

const maxDescriptionLen = 300

// BuildEntry constructs the bill record persisted for an auto-added
// candidate. New entries start provisional, at watching priority, with
// no stage.
func BuildEntry(ref billnum.Ref, details *Details, score int, congressNumber int, today string) dataset.Bill {
	description := "Auto-discovered."
	if details.Summary != "" {
		description += " " + truncate(details.Summary, maxDescriptionLen)
	}

	lastActionDate := details.LatestActionDate
	if lastActionDate == "" {
		lastActionDate = today
	}
	lastAction := details.LatestAction
	if lastAction == "" {
		lastAction = "Unknown"
	}
	title := details.Title
	if title == "" {
		title = "Unknown Title"
	}

	link := fmt.Sprintf("https://www.congress.gov/bill/%dth-congress/%s/%s",
		congressNumber, billnum.Slug(ref.Type), ref.Number)

	return dataset.Bill{
		ID:              ref.ID(),
		BillNumbers:     []string{ref.Display()},
		Title:           title,
		Sponsors:        details.Sponsors,
		Description:     description,
		Category:        "other",
		Position:        "oppose",
		Type:            "bill",
		Priority:        "watching",
		PrioritySource:  "auto-discovered",
		AttackType:      "unknown",
		Provisional:     true,
		AutoDiscovered:  true,
		DiscoveredDate:  today,
		RelevanceScore:  score,
		CongressGovLink: link,
		Status: &dataset.Status{
			Stage:          "",
			LastAction:     lastAction,
			LastActionDate: lastActionDate,
			Cosponsors:     details.Cosponsors,
			Committees:     details.Committees,
		},
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
