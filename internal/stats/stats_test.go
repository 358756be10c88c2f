package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dcbills/tracker/internal/dataset"
)

func TestBuild(t *testing.T) {
	doc := &dataset.Document{
		LastUpdated: "2025-08-15",
		Bills: []dataset.Bill{
			{
				ID:          "hr2056",
				BillNumbers: []string{"H.R. 2056"},
				Title:       "District of Columbia Home Rule Protection Act",
				Status:      &dataset.Status{Stage: dataset.StagePassedHouse},
			},
			{
				ID:     "s1522",
				Title:  "DC Council Reform Act",
				Status: &dataset.Status{Stage: ""},
			},
			{
				ID:    "hr51",
				Title: "No status yet",
			},
		},
		Riders:       []dataset.Bill{{ID: "rider1"}, {ID: "rider2"}},
		SupportBills: []dataset.Bill{{ID: "s51"}},
	}

	stats := Build(doc)

	if stats.LastUpdated != "2025-08-15" {
		t.Errorf("LastUpdated = %q", stats.LastUpdated)
	}
	if stats.TotalBills != 5 {
		t.Errorf("TotalBills = %d, want 5 (bills + riders)", stats.TotalBills)
	}
	if stats.PassedBills != 1 {
		t.Errorf("PassedBills = %d, want 1", stats.PassedBills)
	}
	// Riders count as pending; support bills are outside the tally.
	if stats.PendingBills != 4 {
		t.Errorf("PendingBills = %d, want 4", stats.PendingBills)
	}
	if stats.Breakdown != (Breakdown{Bills: 3, Riders: 2, SupportBills: 1}) {
		t.Errorf("Breakdown = %+v", stats.Breakdown)
	}

	if len(stats.Passed) != 1 {
		t.Fatalf("Passed = %+v", stats.Passed)
	}
	passed := stats.Passed[0]
	if passed.ID != "hr2056" || passed.Number != "H.R. 2056" || passed.Stage != dataset.StagePassedHouse {
		t.Errorf("Passed[0] = %+v", passed)
	}
}

func TestBuildEmptyDocument(t *testing.T) {
	stats := Build(&dataset.Document{})
	if stats.TotalBills != 0 || stats.PassedBills != 0 || stats.PendingBills != 0 {
		t.Errorf("stats = %+v, want all zero", stats)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	stats := &Stats{LastUpdated: "2025-08-15", TotalBills: 3}

	if err := Write(path, stats); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var loaded Stats
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.TotalBills != 3 {
		t.Errorf("TotalBills = %d", loaded.TotalBills)
	}
}

func TestBuildSponsors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	roster := "Member,State,District,Party,Chamber\n" +
		"Eleanor Holmes Norton,DC,At-Large,Democratic,House\n" +
		"John Example Smith,TX,5,Republican,House\n" +
		"Jane Doe,VT,Statewide,Independent,Senate\n"
	if err := os.WriteFile(path, []byte(roster), 0o644); err != nil {
		t.Fatal(err)
	}

	sponsors, err := BuildSponsors(path)
	if err != nil {
		t.Fatalf("BuildSponsors: %v", err)
	}

	// Full name, first+last, and middle-initial variants all resolve.
	for _, key := range []string{
		"Rep Eleanor Holmes Norton",
		"Rep Eleanor Norton",
		"Rep Eleanor H. Norton",
	} {
		sponsor, ok := sponsors[key]
		if !ok {
			t.Errorf("missing key %q", key)
			continue
		}
		if sponsor.Party != "D" || sponsor.State != "DC" {
			t.Errorf("%q = %+v", key, sponsor)
		}
	}

	smith, ok := sponsors["Rep John E. Smith"]
	if !ok {
		t.Fatal("middle-initial variant missing for Smith")
	}
	if smith.Party != "R" || smith.District != "5" {
		t.Errorf("smith = %+v", smith)
	}

	doe, ok := sponsors["Sen Jane Doe"]
	if !ok {
		t.Fatal("senator key missing")
	}
	if doe.Chamber != "Senate" || doe.District != "" {
		t.Errorf("doe = %+v, want Statewide district blanked", doe)
	}
	if doe.Party != "I" {
		t.Errorf("party = %q, want I", doe.Party)
	}
}

func TestBuildSponsorsSkipsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	roster := "Member,State,District,Party,Chamber\n" +
		"Incomplete Row,TX\n" +
		"Valid Member,TX,5,Republican,House\n"
	if err := os.WriteFile(path, []byte(roster), 0o644); err != nil {
		t.Fatal(err)
	}

	sponsors, err := BuildSponsors(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sponsors["Rep Incomplete Row"]; ok {
		t.Error("short row should be skipped")
	}
	if _, ok := sponsors["Rep Valid Member"]; !ok {
		t.Error("valid row missing")
	}
}
