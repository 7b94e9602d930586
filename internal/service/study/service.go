package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/clock"
	"github.com/phrazzld/scry-study/internal/config"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/scheduler"
	"github.com/phrazzld/scry-study/internal/store"
)

// Service runs study sessions. Every method checks that the session, if any,
// belongs to userID.
type Service interface {
	// Decks lists the registered decks in name order.
	Decks() []DeckInfo

	// Start builds a session queue and registers it. A session already open
	// for the same user, deck and direction is discarded.
	Start(ctx context.Context, userID uuid.UUID, req StartRequest) (*SessionView, error)

	// Get returns the session's progress and current card.
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*SessionView, error)

	// Answer grades the current card, persists the review store and advances
	// the session. If persisting fails the session is left exactly as before.
	Answer(ctx context.Context, userID, sessionID uuid.UUID, grade domain.Grade) (*AnswerResult, error)

	// Intervals previews the next interval per grade for the current card.
	Intervals(ctx context.Context, userID, sessionID uuid.UUID) (*Intervals, error)

	// End discards a session. Answers already given stay persisted.
	End(ctx context.Context, userID, sessionID uuid.UUID) error

	// Summary counts due, learning and new items for a deck and direction.
	Summary(ctx context.Context, userID uuid.UUID, deck, direction string, filters url.Values) (*scheduler.Summary, error)

	// GetSettings returns the user's settings for deck, or the defaults.
	GetSettings(ctx context.Context, userID uuid.UUID, deck string) (domain.Settings, error)

	// PutSettings validates and stores the user's settings for deck.
	PutSettings(ctx context.Context, userID uuid.UUID, deck string, settings domain.Settings) (domain.Settings, error)

	// SweepIdle drops sessions idle for longer than the configured timeout.
	SweepIdle(ctx context.Context) int
}

type serviceImpl struct {
	decks    map[string]Deck
	settings store.SettingsStore
	clock    clock.Clock
	cfg      config.StudyConfig
	sessions *registry
	logger   *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates a study service over decks.
func NewService(
	decks []Deck,
	settings store.SettingsStore,
	clk clock.Clock,
	cfg config.StudyConfig,
	logger *slog.Logger,
) Service {
	if settings == nil {
		panic("settings cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	byName := make(map[string]Deck, len(decks))
	for _, d := range decks {
		if _, dup := byName[d.Name()]; dup {
			panic(fmt.Sprintf("deck %q registered twice", d.Name()))
		}
		byName[d.Name()] = d
	}

	return &serviceImpl{
		decks:    byName,
		settings: settings,
		clock:    clk,
		cfg:      cfg,
		sessions: newRegistry(),
		logger:   logger.With(slog.String("component", "study_service")),
	}
}

func (s *serviceImpl) Decks() []DeckInfo {
	infos := make([]DeckInfo, 0, len(s.decks))
	for _, d := range s.decks {
		infos = append(infos, DeckInfo{Name: d.Name(), Directions: d.Directions(), Items: d.Size()})
	}
	slices.SortFunc(infos, func(a, b DeckInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos
}

func (s *serviceImpl) scope(userID uuid.UUID, deckName, direction string) (Deck, store.Scope, error) {
	d, ok := s.decks[deckName]
	if !ok {
		return nil, store.Scope{}, fmt.Errorf("%w: %q", ErrUnknownDeck, deckName)
	}
	if !slices.Contains(d.Directions(), direction) {
		return nil, store.Scope{}, fmt.Errorf("%w: %q for deck %q", ErrUnknownDirection, direction, deckName)
	}
	return d, store.Scope{UserID: userID, Deck: deckName, Direction: direction}, nil
}

// limitFor clamps a requested count to the configured cap for kind.
func (s *serviceImpl) limitFor(kind Kind, requested int) int {
	var limit int
	switch kind {
	case KindPracticeAhead:
		limit = s.cfg.PracticeAheadLimit
	case KindExtraNew:
		limit = s.cfg.ExtraNewLimit
	default:
		return requested
	}
	if requested <= 0 || requested > limit {
		return limit
	}
	return requested
}

func (s *serviceImpl) Start(ctx context.Context, userID uuid.UUID, req StartRequest) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	kind, err := ParseKind(string(req.Kind))
	if err != nil {
		return nil, err
	}
	req.Kind = kind
	req.Count = s.limitFor(kind, req.Count)

	d, scope, err := s.scope(userID, req.Deck, req.Direction)
	if err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx, userID, req.Deck)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	// The new entry is registered locked, so nothing can use it before its
	// queue exists. The displaced session is drained before the store is
	// loaded, so a save still in flight there is visible here.
	e := &entry{id: uuid.New(), owner: userID, scope: scope, kind: kind}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch(now)
	if old := s.sessions.add(e); old != nil {
		old.drain()
		log.Debug("replaced open session",
			slog.String("old_session_id", old.id.String()),
			slog.String("scope", scope.String()))
	}

	run, err := d.open(ctx, scope, req, settings, now)
	if err != nil {
		e.closed = true
		s.sessions.remove(e.id)
		if errors.Is(err, ErrInvalidFilters) || errors.Is(err, ErrInvalidKind) {
			return nil, err
		}
		log.Error("failed to open session",
			slog.String("error", err.Error()),
			slog.String("scope", scope.String()))
		return nil, newServiceError("start_session", "could not load review store", err)
	}
	e.run = run

	view := s.viewOf(e)
	log.Info("session started",
		slog.String("session_id", e.id.String()),
		slog.String("scope", scope.String()),
		slog.String("kind", string(kind)),
		slog.Int("cards", view.Total))
	return &view, nil
}

// acquire returns the user's session locked. The caller must unlock it.
func (s *serviceImpl) acquire(userID, sessionID uuid.UUID) (*entry, error) {
	e, ok := s.sessions.get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if e.owner != userID {
		return nil, ErrSessionNotOwned
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (s *serviceImpl) viewOf(e *entry) SessionView {
	p := e.run.progress()
	return SessionView{
		ID:        e.id,
		Deck:      e.scope.Deck,
		Direction: e.scope.Direction,
		Kind:      e.kind,
		Current:   p.current,
		Total:     p.total,
		Position:  p.position,
		Relearn:   p.relearn,
		Remaining: p.remaining,
		Finished:  p.finished,
	}
}

func (s *serviceImpl) Get(ctx context.Context, userID, sessionID uuid.UUID) (*SessionView, error) {
	e, err := s.acquire(userID, sessionID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	e.touch(s.clock.Now())
	view := s.viewOf(e)
	return &view, nil
}

func (s *serviceImpl) Answer(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	grade domain.Grade,
) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !grade.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidGrade, int(grade))
	}

	e, err := s.acquire(userID, sessionID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	now := s.clock.Now()
	e.touch(now)

	res, err := e.run.answer(ctx, grade, now)
	if err != nil {
		if errors.Is(err, ErrSessionFinished) || errors.Is(err, domain.ErrInvalidGrade) {
			return nil, err
		}
		log.Error("failed to record answer",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()),
			slog.String("scope", e.scope.String()))
		return nil, newServiceError("answer", "could not save review", err)
	}

	log.Debug("answer recorded",
		slog.String("session_id", sessionID.String()),
		slog.String("item_id", res.itemID),
		slog.String("grade", grade.String()),
		slog.Time("next_due", res.nextDue))

	return &AnswerResult{
		ItemID:   res.itemID,
		Grade:    grade,
		Stage:    res.stage,
		NextDue:  res.nextDue,
		Interval: scheduler.FormatInterval(res.nextDue.Sub(now)),
		Session:  s.viewOf(e),
	}, nil
}

func (s *serviceImpl) Intervals(ctx context.Context, userID, sessionID uuid.UUID) (*Intervals, error) {
	e, err := s.acquire(userID, sessionID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	now := s.clock.Now()
	e.touch(now)
	iv, err := e.run.intervals(now)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (s *serviceImpl) End(ctx context.Context, userID, sessionID uuid.UUID) error {
	e, err := s.acquire(userID, sessionID)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	e.closed = true
	s.sessions.remove(sessionID)
	logger.FromContextOrDefault(ctx, s.logger).Debug("session ended",
		slog.String("session_id", sessionID.String()))
	return nil
}

func (s *serviceImpl) Summary(
	ctx context.Context,
	userID uuid.UUID,
	deckName, direction string,
	filters url.Values,
) (*scheduler.Summary, error) {
	d, scope, err := s.scope(userID, deckName, direction)
	if err != nil {
		return nil, err
	}
	settings, err := s.GetSettings(ctx, userID, deckName)
	if err != nil {
		return nil, err
	}

	sum, err := d.summarize(ctx, scope, filters, settings, s.clock.Now())
	if err != nil {
		if errors.Is(err, ErrInvalidFilters) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to summarize deck",
			slog.String("error", err.Error()),
			slog.String("scope", scope.String()))
		return nil, newServiceError("summary", "could not load review store", err)
	}
	return &sum, nil
}

func (s *serviceImpl) defaults() domain.Settings {
	settings := domain.DefaultSettings()
	if s.cfg.DefaultNewItemsPerDay > 0 {
		settings.NewItemsPerDay = s.cfg.DefaultNewItemsPerDay
	}
	return settings
}

func (s *serviceImpl) GetSettings(ctx context.Context, userID uuid.UUID, deckName string) (domain.Settings, error) {
	if _, ok := s.decks[deckName]; !ok {
		return domain.Settings{}, fmt.Errorf("%w: %q", ErrUnknownDeck, deckName)
	}

	settings, err := s.settings.Get(ctx, userID, deckName)
	switch {
	case err == nil:
		return settings, nil
	case errors.Is(err, store.ErrSettingsNotFound):
		return s.defaults(), nil
	default:
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("deck", deckName))
		return domain.Settings{}, newServiceError("get_settings", "could not load settings", err)
	}
}

func (s *serviceImpl) PutSettings(
	ctx context.Context,
	userID uuid.UUID,
	deckName string,
	settings domain.Settings,
) (domain.Settings, error) {
	if _, ok := s.decks[deckName]; !ok {
		return domain.Settings{}, fmt.Errorf("%w: %q", ErrUnknownDeck, deckName)
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	if err := s.settings.Put(ctx, userID, deckName, settings); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("deck", deckName))
		return domain.Settings{}, newServiceError("put_settings", "could not save settings", err)
	}
	return settings, nil
}

func (s *serviceImpl) SweepIdle(ctx context.Context) int {
	idle := time.Duration(s.cfg.SessionIdleMinutes) * time.Minute
	if idle <= 0 {
		return 0
	}
	removed := s.sessions.sweep(s.clock.Now().Add(-idle))
	if len(removed) > 0 {
		logger.FromContextOrDefault(ctx, s.logger).Info("swept idle sessions",
			slog.Int("removed", len(removed)),
			slog.Int("open", s.sessions.count()))
	}
	return len(removed)
}
