package study

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-study/internal/catalog"
	"github.com/phrazzld/scry-study/internal/clock"
	"github.com/phrazzld/scry-study/internal/config"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/domain/srs"
	"github.com/phrazzld/scry-study/internal/platform/filestore"
	"github.com/phrazzld/scry-study/internal/store"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// memRepo keeps review stores in memory and can be told to fail.
type memRepo[ID domain.ItemID] struct {
	mu      sync.Mutex
	docs    map[store.Scope]domain.ReviewStore[ID]
	saves   int
	saveErr error
	loadErr error
	// onSave, if set, runs before each save takes effect. Set it before the
	// repo is shared.
	onSave  func()
}

func newMemRepo[ID domain.ItemID]() *memRepo[ID] {
	return &memRepo[ID]{docs: make(map[store.Scope]domain.ReviewStore[ID])}
}

func (r *memRepo[ID]) Load(_ context.Context, scope store.Scope, today string) (domain.ReviewStore[ID], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return domain.ReviewStore[ID]{}, r.loadErr
	}
	if rs, ok := r.docs[scope]; ok {
		return rs, nil
	}
	return domain.NewReviewStore[ID](today), nil
}

func (r *memRepo[ID]) Save(_ context.Context, scope store.Scope, rs domain.ReviewStore[ID]) error {
	if r.onSave != nil {
		r.onSave()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.docs[scope] = rs
	return nil
}

func (r *memRepo[ID]) failSaves(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveErr = err
}

func (r *memRepo[ID]) doc(scope store.Scope) (domain.ReviewStore[ID], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rs, ok := r.docs[scope]
	return rs, ok
}

type fixture struct {
	svc   Service
	clock *clock.Manual
	ints  *memRepo[int]
	strs  *memRepo[string]
	user  uuid.UUID
}

func testConfig() config.StudyConfig {
	return config.StudyConfig{
		DefaultNewItemsPerDay: 10,
		Timezone:              "UTC",
		SessionIdleMinutes:    30,
		SweepSchedule:         "@every 5m",
		PracticeAheadLimit:    20,
		ExtraNewLimit:         5,
		DesiredRetention:      srs.DefaultDesiredRetention,
		MaximumIntervalDays:   srs.DefaultMaximumIntervalDays,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cats, err := catalog.Load("")
	require.NoError(t, err)
	model, err := srs.NewFSRS(srs.NewDefaultParams())
	require.NoError(t, err)

	f := &fixture{
		clock: clock.NewManual(testNow),
		ints:  newMemRepo[int](),
		strs:  newMemRepo[string](),
		user:  uuid.New(),
	}
	f.svc = NewService(
		BuiltinDecks(cats, model, f.ints, f.strs),
		filestore.NewSettingsStore(t.TempDir()),
		f.clock,
		testConfig(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func (f *fixture) declensionScope() store.Scope {
	return store.Scope{UserID: f.user, Deck: DeckDeclension, Direction: catalog.DirectionProduce}
}

func (f *fixture) start(t *testing.T, req StartRequest) *SessionView {
	t.Helper()
	if req.Deck == "" {
		req.Deck = DeckDeclension
		req.Direction = catalog.DirectionProduce
	}
	view, err := f.svc.Start(context.Background(), f.user, req)
	require.NoError(t, err)
	return view
}
