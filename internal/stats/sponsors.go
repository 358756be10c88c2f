package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Sponsor is one member of Congress in the lookup keyed by the name
// forms that appear in bill sponsor fields.
type Sponsor struct {
	Name     string `json:"name"`
	State    string `json:"state"`
	District string `json:"district,omitempty"`
	Party    string `json:"party"`
	Chamber  string `json:"chamber"`
}

// BuildSponsors reads a congressional roster CSV (member, state,
// district, party, chamber) and builds a lookup with several key
// variants per member, so the free-text sponsor names returned by the
// API resolve to roster entries.
func BuildSponsors(csvPath string) (map[string]Sponsor, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}

	sponsors := make(map[string]Sponsor)
	for i, record := range records {
		if i == 0 || len(record) < 5 {
			continue
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		state := record[1]
		district := record[2]
		party := record[3]
		chamber := record[4]

		if district == "Statewide" {
			district = ""
		}

		sponsor := Sponsor{
			Name:     name,
			State:    state,
			District: district,
			Party:    partyCode(party),
			Chamber:  chamber,
		}

		prefix := "Rep"
		if chamber == "Senate" {
			prefix = "Sen"
		}

		for _, key := range nameKeys(prefix, name) {
			sponsors[key] = sponsor
		}
	}
	return sponsors, nil
}

// nameKeys generates the citation forms a member's name may take in
// sponsor fields: full name, first+last, and first+middle-initial+last.
func nameKeys(prefix, name string) []string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return nil
	}
	last := parts[len(parts)-1]

	keys := []string{
		prefix + " " + name,
		prefix + " " + parts[0] + " " + last,
	}
	if len(parts) > 2 {
		keys = append(keys, fmt.Sprintf("%s %s %c. %s", prefix, parts[0], parts[1][0], last))
	}
	return keys
}

func partyCode(party string) string {
	switch party {
	case "Democratic":
		return "D"
	case "Republican":
		return "R"
	default:
		if party == "" {
			return ""
		}
		return party[:1]
	}
}

// WriteSponsors renders the sponsor lookup as pretty-printed JSON.
func WriteSponsors(path string, sponsors map[string]Sponsor) error {
	data, err := json.MarshalIndent(sponsors, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sponsors: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sponsors: %w", err)
	}
	return nil
}
