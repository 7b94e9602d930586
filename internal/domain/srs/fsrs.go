package srs

import (
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs/v3"

	"github.com/phrazzld/scry-study/internal/domain"
)

// FSRSModel is a MemoryModel backed by go-fsrs. Fuzzing stays disabled so the
// projections are reproducible.
type FSRSModel struct {
	scheduler *fsrs.FSRS
}

var _ MemoryModel = (*FSRSModel)(nil)

// NewFSRS builds an FSRS model with the given tuning.
func NewFSRS(params Params) (*FSRSModel, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p := fsrs.DefaultParam()
	p.RequestRetention = params.DesiredRetention
	p.MaximumInterval = float64(params.MaximumIntervalDays)

	return &FSRSModel{scheduler: fsrs.NewFSRS(p)}, nil
}

// Repeat implements MemoryModel.
func (m *FSRSModel) Repeat(state domain.MemoryState, now time.Time) map[domain.Grade]Outcome {
	records := m.scheduler.Repeat(toCard(state), now)

	out := make(map[domain.Grade]Outcome, len(domain.Grades))
	for _, g := range domain.Grades {
		info, ok := records[fsrs.Rating(g)]
		if !ok {
			continue
		}
		out[g] = Outcome{
			State: fromCard(info.Card),
			Log: domain.ReviewLog{
				Grade:         g,
				Stage:         domain.LearningStage(info.ReviewLog.State),
				ScheduledDays: info.ReviewLog.ScheduledDays,
				ElapsedDays:   info.ReviewLog.ElapsedDays,
				ReviewedAt:    info.ReviewLog.Review,
			},
		}
	}
	return out
}

func toCard(s domain.MemoryState) fsrs.Card {
	return fsrs.Card{
		Due:           s.Due,
		Stability:     s.Stability,
		Difficulty:    s.Difficulty,
		ElapsedDays:   s.ElapsedDays,
		ScheduledDays: s.ScheduledDays,
		Reps:          s.Reps,
		Lapses:        s.Lapses,
		State:         fsrs.State(s.Stage),
		LastReview:    s.LastReview,
	}
}

func fromCard(c fsrs.Card) domain.MemoryState {
	return domain.MemoryState{
		Stage:         domain.LearningStage(c.State),
		Due:           c.Due,
		LastReview:    c.LastReview,
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		ElapsedDays:   c.ElapsedDays,
		ScheduledDays: c.ScheduledDays,
		Reps:          c.Reps,
		Lapses:        c.Lapses,
	}
}
