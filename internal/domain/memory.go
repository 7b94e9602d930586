package domain

import "time"

// MemoryState is the memory model's per-item state. The scheduler only reads
// Stage and Due; everything else belongs to the model and is carried through
// untouched.
type MemoryState struct {
	Stage         LearningStage `json:"stage"`
	Due           time.Time     `json:"due"`
	LastReview    time.Time     `json:"last_review"`
	Stability     float64       `json:"stability"`
	Difficulty    float64       `json:"difficulty"`
	ElapsedDays   uint64        `json:"elapsed_days"`
	ScheduledDays uint64        `json:"scheduled_days"`
	Reps          uint64        `json:"reps"`
	Lapses        uint64        `json:"lapses"`
}

// NewMemoryState returns the state of an item that has never been studied:
// stage New, due immediately.
func NewMemoryState(now time.Time) MemoryState {
	return MemoryState{
		Stage: StageNew,
		Due:   now,
	}
}

// ReviewLog records the most recent review of an item.
type ReviewLog struct {
	Grade         Grade         `json:"grade"`
	Stage         LearningStage `json:"stage"` // stage before the review
	ScheduledDays uint64        `json:"scheduled_days"`
	ElapsedDays   uint64        `json:"elapsed_days"`
	ReviewedAt    time.Time     `json:"reviewed_at"`
}
