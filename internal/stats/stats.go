// Package stats derives the summary documents the dashboard fetches:
// aggregate bill counts and the passed-bill list, plus the sponsor
// lookup generated from a congressional roster.
package stats

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dcbills/tracker/internal/dataset"
)

type Stats struct {
	LastUpdated  string       `json:"lastUpdated"`
	TotalBills   int          `json:"totalBills"`
	PendingBills int          `json:"pendingBills"`
	PassedBills  int          `json:"passedBills"`
	Breakdown    Breakdown    `json:"breakdown"`
	Passed       []PassedBill `json:"passed"`
}

type Breakdown struct {
	Bills        int `json:"bills"`
	Riders       int `json:"riders"`
	SupportBills int `json:"supportBills"`
}

type PassedBill struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Title  string `json:"title"`
	Stage  string `json:"stage"`
}

// Build computes aggregate stats from the dataset. Riders count as
// pending oppose-bills: they live or die with their appropriations
// vehicle, so they never appear in the passed list themselves.
func Build(doc *dataset.Document) *Stats {
	stats := &Stats{
		LastUpdated: doc.LastUpdated,
		Breakdown: Breakdown{
			Bills:        len(doc.Bills),
			Riders:       len(doc.Riders),
			SupportBills: len(doc.SupportBills),
		},
	}

	pending := 0
	for _, bill := range doc.Bills {
		stage := ""
		if bill.Status != nil {
			stage = bill.Status.Stage
		}
		if dataset.HasPassed(stage) {
			number := ""
			if len(bill.BillNumbers) > 0 {
				number = bill.BillNumbers[0]
			}
			stats.Passed = append(stats.Passed, PassedBill{
				ID:     bill.ID,
				Number: number,
				Title:  bill.Title,
				Stage:  stage,
			})
		} else {
			pending++
		}
	}

	stats.PassedBills = len(stats.Passed)
	stats.TotalBills = len(doc.Bills) + len(doc.Riders)
	stats.PendingBills = pending + len(doc.Riders)
	return stats
}

// Write renders stats as pretty-printed JSON at path.
func Write(path string, stats *Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
