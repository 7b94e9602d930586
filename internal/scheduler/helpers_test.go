package scheduler

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/domain/srs"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

const testDay = "2024-05-01"

type testItem struct {
	id     int
	tag    string
	custom bool
}

func (t testItem) ItemID() int    { return t.id }
func (t testItem) IsCustom() bool { return t.custom }

type tagFilter struct {
	tag string
}

func matchTag(item testItem, f tagFilter) bool {
	return f.tag == "" || item.tag == f.tag
}

// stepModel is a fixed-interval memory model: Again +1m, Hard +10m (both
// learning), Good +1d, Easy +4d (both review).
type stepModel struct{}

func (stepModel) Repeat(state domain.MemoryState, now time.Time) map[domain.Grade]srs.Outcome {
	project := func(g domain.Grade, stage domain.LearningStage, d time.Duration) srs.Outcome {
		next := state
		next.Stage = stage
		next.Due = now.Add(d)
		next.LastReview = now
		next.Reps++
		if g == domain.GradeAgain && state.Stage == domain.StageReview {
			next.Stage = domain.StageRelearning
			next.Lapses++
		}
		return srs.Outcome{
			State: next,
			Log:   domain.ReviewLog{Grade: g, Stage: state.Stage, ReviewedAt: now},
		}
	}
	return map[domain.Grade]srs.Outcome{
		domain.GradeAgain: project(domain.GradeAgain, domain.StageLearning, time.Minute),
		domain.GradeHard:  project(domain.GradeHard, domain.StageLearning, 10*time.Minute),
		domain.GradeGood:  project(domain.GradeGood, domain.StageReview, 24*time.Hour),
		domain.GradeEasy:  project(domain.GradeEasy, domain.StageReview, 4*24*time.Hour),
	}
}

func newTestEngine(opts ...Option) *Engine[int, testItem, tagFilter] {
	return NewEngine[int, testItem, tagFilter](stepModel{}, matchTag, opts...)
}

func seededEngine(seed uint64) *Engine[int, testItem, tagFilter] {
	return newTestEngine(WithShuffler(rand.New(rand.NewPCG(seed, seed))))
}

func catalogOf(n int) []testItem {
	items := make([]testItem, n)
	for i := range items {
		items[i] = testItem{id: i + 1}
	}
	return items
}

func withStage(store domain.ReviewStore[int], id int, stage domain.LearningStage, due time.Time) domain.ReviewStore[int] {
	rec := domain.NewReviewRecord(id, testNow)
	rec.Memory.Stage = stage
	rec.Memory.Due = due
	return store.WithRecord(rec)
}

func ids(cards []SessionCard[int, testItem]) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Item.ItemID()
	}
	return out
}

func sortedIDs(cards []SessionCard[int, testItem]) []int {
	out := ids(cards)
	slices.Sort(out)
	return out
}
