package catalog

import (
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/domain/srs"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type stubModel struct{}

func (stubModel) Repeat(state domain.MemoryState, now time.Time) map[domain.Grade]srs.Outcome {
	out := make(map[domain.Grade]srs.Outcome, len(domain.Grades))
	for _, g := range domain.Grades {
		next := state
		next.Stage = domain.StageReview
		next.Due = now.Add(time.Duration(g) * 24 * time.Hour)
		out[g] = srs.Outcome{State: next, Log: domain.ReviewLog{Grade: g, Stage: state.Stage, ReviewedAt: now}}
	}
	return out
}
