package monitor

import (
	"encoding/json"
	"fmt"
	"os"
)

// HistoryEntry is one monitor run's summary in the rolling history log.
type HistoryEntry struct {
	RunID     string   `json:"runId"`
	Timestamp string   `json:"timestamp"`
	Changes   []Change `json:"changes"`
	Errors    []string `json:"errors"`
}

// AppendHistory appends entry to the history log at path, evicting the
// oldest entries beyond limit (FIFO). A missing or unreadable log
// starts fresh rather than failing the run.
func AppendHistory(path string, entry HistoryEntry, limit int) error {
	var history []HistoryEntry
	if data, err := os.ReadFile(path); err == nil {
		// Ignore a corrupt log; the history is advisory.
		_ = json.Unmarshal(data, &history)
	}

	history = append(history, entry)
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
