package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-study/internal/domain"
)

func newTestModel(t *testing.T) *FSRSModel {
	t.Helper()
	m, err := NewFSRS(NewDefaultParams())
	require.NoError(t, err)
	return m
}

func TestNewFSRSRejectsBadParams(t *testing.T) {
	t.Parallel()

	_, err := NewFSRS(Params{DesiredRetention: 1.5, MaximumIntervalDays: 100})
	assert.Error(t, err)

	_, err = NewFSRS(Params{DesiredRetention: 0.9, MaximumIntervalDays: 0})
	assert.Error(t, err)
}

func TestRepeatCoversEveryGrade(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	outcomes := m.Repeat(domain.NewMemoryState(now), now)
	require.Len(t, outcomes, len(domain.Grades))

	for _, g := range domain.Grades {
		o, ok := outcomes[g]
		require.True(t, ok, g.String())
		assert.Equal(t, g, o.Log.Grade)
		assert.Equal(t, domain.StageNew, o.Log.Stage, "log records the stage before review")
		assert.False(t, o.State.Due.Before(now), "%s: due must not precede now", g)
		assert.NotEqual(t, domain.StageNew, o.State.Stage, "%s: a reviewed item leaves New", g)
		assert.Equal(t, uint64(1), o.State.Reps)
	}

	assert.Equal(t, domain.StageReview, outcomes[domain.GradeEasy].State.Stage)
}

func TestRepeatOrdersDueByGrade(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	outcomes := m.Repeat(domain.NewMemoryState(now), now)
	assert.False(t, outcomes[domain.GradeEasy].State.Due.Before(outcomes[domain.GradeGood].State.Due))
	assert.False(t, outcomes[domain.GradeGood].State.Due.Before(outcomes[domain.GradeAgain].State.Due))
}

func TestRepeatIsDeterministic(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	state := m.Repeat(domain.NewMemoryState(now), now)[domain.GradeEasy].State
	later := state.Due.Add(time.Hour)

	assert.Equal(t, m.Repeat(state, later), m.Repeat(state, later))
}

func TestLapseCountsAgainOnReviewItem(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	review := m.Repeat(domain.NewMemoryState(now), now)[domain.GradeEasy].State
	require.Equal(t, domain.StageReview, review.Stage)

	lapsed := m.Repeat(review, review.Due)[domain.GradeAgain]
	assert.Equal(t, domain.StageReview, lapsed.Log.Stage)
	assert.Equal(t, uint64(1), lapsed.State.Lapses)
	assert.True(t, lapsed.State.Due.Before(m.Repeat(review, review.Due)[domain.GradeGood].State.Due))
}
