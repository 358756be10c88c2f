package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Load reads the whole dataset document into memory.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &doc, nil
}

// Save writes the whole document back, pretty-printed. This is the only
// mutation path; there are no partial writes.
func Save(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// Today returns the wall-clock date (YYYY-MM-DD) in the given time
// zone, falling back to local time when the zone cannot be loaded.
func Today(timeZone string) string {
	now := time.Now()
	if loc, err := time.LoadLocation(timeZone); err == nil {
		now = now.In(loc)
	}
	return now.Format("2006-01-02")
}
