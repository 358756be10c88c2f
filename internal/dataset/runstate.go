package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

type runState struct {
	LastRun string `json:"lastRun"`
}

// LastRun returns the date (YYYY-MM-DD) of the previous discovery run,
// or ok=false when no run record exists or it is unreadable.
func LastRun(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var state runState
	if err := json.Unmarshal(data, &state); err != nil || state.LastRun == "" {
		return "", false
	}
	return state.LastRun, true
}

// SaveLastRun records date as the last discovery run, used by the next
// invocation as the default incremental-scan lower bound.
func SaveLastRun(path, date string) error {
	data, err := json.MarshalIndent(runState{LastRun: date}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run state: %w", err)
	}
	return nil
}
