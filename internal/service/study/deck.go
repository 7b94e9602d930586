package study

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"slices"
	"time"

	"github.com/phrazzld/scry-study/internal/catalog"
	"github.com/phrazzld/scry-study/internal/clock"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/domain/srs"
	"github.com/phrazzld/scry-study/internal/scheduler"
	"github.com/phrazzld/scry-study/internal/store"
)

// DeckItem is a catalog item that can be scheduled and shown.
type DeckItem[ID domain.ItemID] interface {
	domain.Item[ID]
	catalog.Card
}

// FilterParser turns request values into a deck's filter type.
type FilterParser[F any] func(values url.Values) (F, error)

// Deck is a catalog bound to its scheduling engine and review storage. The
// item, id and filter types are hidden so decks of different kinds can share
// one registry.
type Deck interface {
	Name() string
	Directions() []string
	Size() int

	summarize(ctx context.Context, scope store.Scope, filters url.Values, settings domain.Settings, now time.Time) (scheduler.Summary, error)
	open(ctx context.Context, scope store.Scope, req StartRequest, settings domain.Settings, now time.Time) (runner, error)
}

type deck[ID domain.ItemID, I DeckItem[ID], F any] struct {
	name       string
	directions []string
	items      catalog.Provider[I]
	engine     *scheduler.Engine[ID, I, F]
	parse      FilterParser[F]
	repo       store.ReviewStoreRepository[ID]
}

var _ Deck = (*deck[int, catalog.Declension, catalog.DeclensionFilters])(nil)

// NewDeck binds a catalog to an engine and a repository.
func NewDeck[ID domain.ItemID, I DeckItem[ID], F any](
	name string,
	directions []string,
	items catalog.Provider[I],
	engine *scheduler.Engine[ID, I, F],
	parse FilterParser[F],
	repo store.ReviewStoreRepository[ID],
) Deck {
	if items == nil || engine == nil || parse == nil || repo == nil {
		panic(fmt.Sprintf("deck %q: items, engine, parse and repo are required", name))
	}
	if len(directions) == 0 {
		panic(fmt.Sprintf("deck %q: at least one direction is required", name))
	}
	return &deck[ID, I, F]{
		name:       name,
		directions: slices.Clone(directions),
		items:      items,
		engine:     engine,
		parse:      parse,
		repo:       repo,
	}
}

func (d *deck[ID, I, F]) Name() string         { return d.name }
func (d *deck[ID, I, F]) Directions() []string { return slices.Clone(d.directions) }
func (d *deck[ID, I, F]) Size() int            { return len(d.items.Items()) }

func (d *deck[ID, I, F]) filters(values url.Values) (F, error) {
	f, err := d.parse(values)
	if err != nil {
		return f, fmt.Errorf("%w: %v", ErrInvalidFilters, err)
	}
	return f, nil
}

// load fetches the review store and applies the day rollover.
func (d *deck[ID, I, F]) load(ctx context.Context, scope store.Scope, now time.Time) (domain.ReviewStore[ID], error) {
	today := clock.DayOf(now)
	rs, err := d.repo.Load(ctx, scope, today)
	if err != nil {
		return rs, err
	}
	return scheduler.Rollover(rs, today), nil
}

func (d *deck[ID, I, F]) summarize(
	ctx context.Context,
	scope store.Scope,
	values url.Values,
	settings domain.Settings,
	now time.Time,
) (scheduler.Summary, error) {
	f, err := d.filters(values)
	if err != nil {
		return scheduler.Summary{}, err
	}
	rs, err := d.load(ctx, scope, now)
	if err != nil {
		return scheduler.Summary{}, err
	}
	return d.engine.Summarize(d.items.Items(), rs, f, settings, now), nil
}

func (d *deck[ID, I, F]) open(
	ctx context.Context,
	scope store.Scope,
	req StartRequest,
	settings domain.Settings,
	now time.Time,
) (runner, error) {
	f, err := d.filters(url.Values(req.Filters))
	if err != nil {
		return nil, err
	}
	rs, err := d.load(ctx, scope, now)
	if err != nil {
		return nil, err
	}

	items := d.items.Items()
	engine := d.engine.Salted(scopeSalt(scope))
	var queue []scheduler.SessionCard[ID, I]
	switch req.Kind {
	case KindRegular:
		queue = engine.BuildSession(items, rs, f, settings, now).Queue()
	case KindPracticeAhead:
		queue = engine.PracticeAhead(items, rs, f, req.Count, now)
	case KindExtraNew:
		queue = engine.ExtraNew(items, rs, f, req.Count, now)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, req.Kind)
	}

	return &session[ID, I, F]{
		deck:   d,
		scope:  scope,
		store:  rs,
		cursor: scheduler.NewCursor(queue),
	}, nil
}

// scopeSalt keys the new-item shuffle to the user and direction.
func scopeSalt(scope store.Scope) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(scope.String()))
	return h.Sum64()
}

// Builtin deck names.
const (
	DeckDeclension  = "declension"
	DeckVocabulary  = "vocabulary"
	DeckConjugation = "conjugation"
)

// BuiltinDecks wires the bundled catalogs. Decks with integer ids share ints,
// the vocabulary deck uses strs. opts apply to every engine.
func BuiltinDecks(
	cats *catalog.Catalogs,
	model srs.MemoryModel,
	ints store.ReviewStoreRepository[int],
	strs store.ReviewStoreRepository[string],
	opts ...scheduler.Option,
) []Deck {
	return []Deck{
		NewDeck[int, catalog.Declension, catalog.DeclensionFilters](
			DeckDeclension,
			[]string{catalog.DirectionProduce},
			cats.Declension,
			scheduler.NewEngine[int, catalog.Declension, catalog.DeclensionFilters](model, catalog.MatchDeclension, opts...),
			catalog.ParseDeclensionFilters,
			ints,
		),
		NewDeck[string, catalog.Word, catalog.VocabularyFilters](
			DeckVocabulary,
			[]string{catalog.DirectionGermanToEnglish, catalog.DirectionEnglishToGerman},
			cats.Vocabulary,
			scheduler.NewEngine[string, catalog.Word, catalog.VocabularyFilters](model, catalog.MatchWord, opts...),
			catalog.ParseVocabularyFilters,
			strs,
		),
		NewDeck[int, catalog.Conjugation, catalog.ConjugationFilters](
			DeckConjugation,
			[]string{catalog.DirectionProduce},
			cats.Conjugation,
			scheduler.NewEngine[int, catalog.Conjugation, catalog.ConjugationFilters](model, catalog.MatchConjugation, opts...),
			catalog.ParseConjugationFilters,
			ints,
		),
	}
}
