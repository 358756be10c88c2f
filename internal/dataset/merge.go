package dataset

// Merge policies are explicit functions so their contracts (never
// revert a stage, never overwrite recorded vote data) are visible and
// testable in isolation.

var stageRank = map[string]int{
	"":                0,
	StagePassedHouse:  1,
	StagePassedSenate: 1,
	StagePassedBoth:   2,
	StageEnacted:      3,
}

// MergeStage returns the stage to record given the currently persisted
// value and freshly detected evidence. Stages only ever move forward:
// detected evidence that ranks at or below the current stage leaves it
// unchanged, so a transient gap in upstream action data never reverts
// an already-recorded passage.
func MergeStage(current, detected string) string {
	if stageRank[detected] > stageRank[current] {
		return detected
	}
	return current
}

// MergePassage merges detected passage records into existing ones with
// first-write-wins semantics per chamber: once a chamber's vote record
// exists it is never replaced, preserving any manually corrected
// figures.
func MergePassage(existing, detected *Passage) *Passage {
	if detected == nil {
		return existing
	}
	if existing == nil {
		return detected
	}
	if existing.House == nil {
		existing.House = detected.House
	}
	if existing.Senate == nil {
		existing.Senate = detected.Senate
	}
	return existing
}
