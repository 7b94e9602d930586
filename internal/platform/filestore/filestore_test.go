package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/store"
)

var (
	testNow  = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	testUser = uuid.MustParse("3b8e9b8e-5f0c-4a55-9d2a-1d0c5d9f0a11")
)

func TestReviewStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewReviewStoreRepository[int](t.TempDir(), nil)
	scope := store.Scope{UserID: testUser, Deck: "declension", Direction: "produce"}

	fresh, err := repo.Load(ctx, scope, "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, fresh.Records)
	assert.Equal(t, "2024-05-01", fresh.LastRolloverDate)

	rec := domain.NewReviewRecord(7, testNow)
	rec.Memory.Stage = domain.StageLearning
	rec.Memory.Due = testNow.Add(10 * time.Minute)
	rec.Log = &domain.ReviewLog{Grade: domain.GradeHard, Stage: domain.StageNew, ReviewedAt: testNow}
	rs := fresh.WithRecord(rec).WithReviewed(7).WithNewToday(7)

	require.NoError(t, repo.Save(ctx, scope, rs))

	loaded, err := repo.Load(ctx, scope, "2024-05-01")
	require.NoError(t, err)
	got, ok := loaded.Record(7)
	require.True(t, ok)
	assert.True(t, got.Memory.Due.Equal(rec.Memory.Due))
	assert.Equal(t, domain.StageLearning, got.Memory.Stage)
	require.NotNil(t, got.Log)
	assert.Equal(t, domain.GradeHard, got.Log.Grade)
	assert.True(t, loaded.NewItemsToday.Has(7))
}

func TestReviewStoreFailsOpenOnCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx, buf := logger.CaptureContext(t)
	repo := NewReviewStoreRepository[string](dir, nil)
	scope := store.Scope{UserID: testUser, Deck: "vocabulary", Direction: "de-en"}

	path := filepath.Join(dir, testUser.String(), "vocabulary.de-en.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	rs, err := repo.Load(ctx, scope, "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, rs.Records)
	logger.AssertLogContains(t, buf, "discarding unreadable review store file")
}

func TestReviewStoreRejectsUnsafeScope(t *testing.T) {
	t.Parallel()

	repo := NewReviewStoreRepository[int](t.TempDir(), nil)

	_, err := repo.Load(context.Background(), store.Scope{UserID: testUser, Deck: "../etc", Direction: "x"}, "2024-05-01")
	assert.ErrorIs(t, err, store.ErrInvalidScope)

	err = repo.Save(context.Background(), store.Scope{UserID: testUser, Deck: "declension"}, domain.NewReviewStore[int]("2024-05-01"))
	assert.ErrorIs(t, err, store.ErrInvalidScope)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewReviewStoreRepository[int](dir, nil)
	scope := store.Scope{UserID: testUser, Deck: "conjugation", Direction: "produce"}

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(context.Background(), scope, domain.NewReviewStore[int]("2024-05-01")))
	}

	entries, err := os.ReadDir(filepath.Join(dir, testUser.String()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "conjugation.produce.json", entries[0].Name())
}

func TestSettingsStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSettingsStore(t.TempDir())

	_, err := s.Get(ctx, testUser, "vocabulary")
	assert.ErrorIs(t, err, store.ErrSettingsNotFound)

	require.NoError(t, s.Put(ctx, testUser, "vocabulary", domain.Settings{NewItemsPerDay: 5}))
	require.NoError(t, s.Put(ctx, testUser, "declension", domain.Settings{NewItemsPerDay: 8}))

	got, err := s.Get(ctx, testUser, "vocabulary")
	require.NoError(t, err)
	assert.Equal(t, 5, got.NewItemsPerDay)

	assert.ErrorIs(t, s.Put(ctx, testUser, "vocabulary", domain.Settings{NewItemsPerDay: 0}), domain.ErrInvalidSettings)
}
