package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.json")

	doc := &Document{
		LastUpdated: "2025-08-01",
		Categories:  []byte(`{"other":{"label":"Other"}}`),
		Bills: []Bill{
			{
				ID:          "hr2056",
				BillNumbers: []string{"H.R. 2056"},
				Title:       "District of Columbia Home Rule Protection Act",
				Category:    "other",
				Position:    "oppose",
				Priority:    "watching",
				Status: &Status{
					Stage:      StagePassedHouse,
					LastAction: "On passage Passed by recorded vote: 218 - 209 (Roll no. 215).",
					Cosponsors: 12,
					Committees: []string{"Committee on Oversight and Government Reform"},
				},
				Passage: &Passage{
					House: &ChamberPassage{
						Date: "2025-03-12",
						Vote: &Vote{
							Yeas: 218, Nays: 209,
							ByParty: ByParty{
								Republican: PartyVotes{Yeas: 210, Nays: 3},
								Democrat:   PartyVotes{Yeas: 8, Nays: 206},
							},
						},
					},
				},
			},
		},
		Riders:       []Bill{{ID: "approps-fy26-rider1", Title: "FY26 rider"}},
		SupportBills: []Bill{},
	}

	if err := Save(path, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.LastUpdated != doc.LastUpdated {
		t.Errorf("LastUpdated = %q, want %q", loaded.LastUpdated, doc.LastUpdated)
	}
	if len(loaded.Bills) != 1 || loaded.Bills[0].ID != "hr2056" {
		t.Fatalf("Bills = %+v", loaded.Bills)
	}
	bill := loaded.Bills[0]
	if bill.Status == nil || bill.Status.Stage != StagePassedHouse {
		t.Errorf("Status = %+v", bill.Status)
	}
	if bill.Passage == nil || bill.Passage.House == nil || bill.Passage.House.Vote.Yeas != 218 {
		t.Errorf("Passage = %+v", bill.Passage)
	}
	// Indentation changes across a save, so compare structure, not bytes.
	var got, want map[string]any
	if err := json.Unmarshal(loaded.Categories, &got); err != nil {
		t.Fatalf("Categories unreadable after round trip: %v", err)
	}
	if err := json.Unmarshal(doc.Categories, &want); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
}

func TestStatusStageSerializesNullWhenEmpty(t *testing.T) {
	data, err := json.Marshal(&Status{LastAction: "Introduced in House"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"stage":null`) {
		t.Errorf("empty stage = %s, want explicit null", data)
	}

	data, err = json.Marshal(&Status{Stage: StagePassedHouse})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"stage":"passed-house"`) {
		t.Errorf("set stage = %s", data)
	}

	// null round-trips back to the empty stage.
	var status Status
	if err := json.Unmarshal([]byte(`{"stage":null,"cosponsors":3}`), &status); err != nil {
		t.Fatal(err)
	}
	if status.Stage != "" || status.Cosponsors != 3 {
		t.Errorf("status = %+v", status)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load of missing file should fail")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of corrupt file should fail")
	}
}

func TestMergeStageForwardOnly(t *testing.T) {
	tests := []struct {
		current  string
		detected string
		want     string
	}{
		{"", StagePassedHouse, StagePassedHouse},
		{StagePassedHouse, "", StagePassedHouse},
		{StagePassedHouse, StagePassedSenate, StagePassedHouse}, // equal rank, keep current
		{StagePassedHouse, StagePassedBoth, StagePassedBoth},
		{StagePassedBoth, StagePassedHouse, StagePassedBoth},
		{StagePassedBoth, StageEnacted, StageEnacted},
		{StageEnacted, StagePassedBoth, StageEnacted},
		{"", "", ""},
	}

	for _, tt := range tests {
		if got := MergeStage(tt.current, tt.detected); got != tt.want {
			t.Errorf("MergeStage(%q, %q) = %q, want %q", tt.current, tt.detected, got, tt.want)
		}
	}
}

func TestMergePassageFirstWriteWins(t *testing.T) {
	existing := &Passage{
		House: &ChamberPassage{Date: "2025-03-12", Vote: &Vote{Yeas: 218, Nays: 209}},
	}
	detected := &Passage{
		House:  &ChamberPassage{Date: "2025-06-01", Vote: &Vote{Yeas: 230, Nays: 195}},
		Senate: &ChamberPassage{Date: "2025-06-15", Vote: &Vote{Yeas: 55, Nays: 44}},
	}

	merged := MergePassage(existing, detected)
	if merged.House.Date != "2025-03-12" || merged.House.Vote.Yeas != 218 {
		t.Errorf("House record overwritten: %+v", merged.House)
	}
	if merged.Senate == nil || merged.Senate.Date != "2025-06-15" {
		t.Errorf("Senate record not filled in: %+v", merged.Senate)
	}
}

func TestMergePassageNilHandling(t *testing.T) {
	detected := &Passage{House: &ChamberPassage{Date: "2025-03-12"}}

	if got := MergePassage(nil, detected); got != detected {
		t.Error("nil existing should adopt detected wholesale")
	}
	existing := &Passage{House: &ChamberPassage{Date: "2025-01-01"}}
	if got := MergePassage(existing, nil); got != existing {
		t.Error("nil detected should leave existing untouched")
	}
}

func TestHasPassed(t *testing.T) {
	tests := []struct {
		stage string
		want  bool
	}{
		{"", false},
		{StagePassedHouse, true},
		{StagePassedSenate, true},
		{StagePassedBoth, true},
		{StageEnacted, true},
		{"in-committee", false},
	}

	for _, tt := range tests {
		if got := HasPassed(tt.stage); got != tt.want {
			t.Errorf("HasPassed(%q) = %v, want %v", tt.stage, got, tt.want)
		}
	}
}

func TestAllBills(t *testing.T) {
	doc := &Document{
		Bills:        []Bill{{ID: "hr1"}, {ID: "hr2"}},
		Riders:       []Bill{{ID: "rider1"}},
		SupportBills: []Bill{{ID: "s1"}},
	}

	all := doc.AllBills()
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	wantOrder := []string{"hr1", "hr2", "rider1", "s1"}
	for i, id := range wantOrder {
		if all[i].ID != id {
			t.Errorf("all[%d].ID = %q, want %q", i, all[i].ID, id)
		}
	}
}

func TestRunStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-run.json")

	if _, ok := LastRun(path); ok {
		t.Error("LastRun on missing file should report ok=false")
	}

	if err := SaveLastRun(path, "2025-08-15"); err != nil {
		t.Fatalf("SaveLastRun: %v", err)
	}
	date, ok := LastRun(path)
	if !ok || date != "2025-08-15" {
		t.Errorf("LastRun = %q, %v; want 2025-08-15, true", date, ok)
	}
}

func TestLastRunCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-run.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := LastRun(path); ok {
		t.Error("corrupt run state should report ok=false")
	}
}
