package study

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/scry-study/internal/clock"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/scheduler"
	"github.com/phrazzld/scry-study/internal/store"
)

// runner is the type-erased face of a session. Callers serialise access.
type runner interface {
	progress() progress
	answer(ctx context.Context, grade domain.Grade, now time.Time) (answered, error)
	intervals(now time.Time) (Intervals, error)
}

type progress struct {
	current   *CardView
	total     int
	position  int
	relearn   int
	remaining int
	finished  bool
}

type answered struct {
	itemID  string
	stage   string
	nextDue time.Time
}

// session owns the working review store snapshot and the cursor over the queue.
type session[ID domain.ItemID, I DeckItem[ID], F any] struct {
	deck   *deck[ID, I, F]
	scope  store.Scope
	store  domain.ReviewStore[ID]
	cursor scheduler.Cursor[ID, I]
}

func (s *session[ID, I, F]) progress() progress {
	p := progress{
		total:     s.cursor.MainLen(),
		position:  s.cursor.Index(),
		relearn:   s.cursor.RelearnLen(),
		remaining: s.cursor.Remaining(),
		finished:  s.cursor.Finished(),
	}
	if card, ok := s.cursor.Current(); ok {
		view := s.view(card)
		p.current = &view
	}
	return p
}

func (s *session[ID, I, F]) view(card scheduler.SessionCard[ID, I]) CardView {
	return CardView{
		ItemID:  itemKey(card.Item.ItemID()),
		Front:   card.Item.Front(s.scope.Direction),
		Back:    card.Item.Back(s.scope.Direction),
		Stage:   card.Record.Memory.Stage.String(),
		IsNew:   card.IsNew,
		Custom:  domain.IsCustom(card.Item),
		Relearn: !s.cursor.InMain(),
	}
}

// answer rates the current card and persists the result. The new snapshot is
// applied optimistically; if the save fails the previous snapshot is restored
// and the cursor stays on the same card.
func (s *session[ID, I, F]) answer(ctx context.Context, grade domain.Grade, now time.Time) (answered, error) {
	card, ok := s.cursor.Current()
	if !ok {
		return answered{}, ErrSessionFinished
	}

	previous := s.store
	working := scheduler.Rollover(previous, clock.DayOf(now))

	rating, err := s.deck.engine.AnswerCard(working, card, grade, now)
	if err != nil {
		return answered{}, err
	}

	s.store = rating.Store
	if err := s.deck.repo.Save(ctx, s.scope, rating.Store); err != nil {
		s.store = previous
		return answered{}, fmt.Errorf("save review store: %w", err)
	}

	card.Record = rating.Record
	s.cursor = s.cursor.Answer(card, grade)

	return answered{
		itemID:  itemKey(rating.Record.ItemID),
		stage:   rating.Record.Memory.Stage.String(),
		nextDue: rating.Record.Memory.Due,
	}, nil
}

func (s *session[ID, I, F]) intervals(now time.Time) (Intervals, error) {
	card, ok := s.cursor.Current()
	if !ok {
		return Intervals{}, ErrSessionFinished
	}
	labels := s.deck.engine.NextIntervals(card.Record.Memory, now)
	out := Intervals{
		ItemID: itemKey(card.Item.ItemID()),
		Labels: make(map[string]string, len(labels)),
	}
	for g, label := range labels {
		out.Labels[g.String()] = label
	}
	return out, nil
}

func itemKey[ID domain.ItemID](id ID) string {
	return fmt.Sprint(id)
}
