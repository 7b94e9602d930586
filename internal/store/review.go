package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Scope identifies one review store: a user studying one deck in one direction.
type Scope struct {
	UserID    uuid.UUID
	Deck      string
	Direction string
}

// Validate checks that the scope names a deck and a direction.
func (s Scope) Validate() error {
	if s.Deck == "" || s.Direction == "" {
		return fmt.Errorf("%w: deck and direction are required", ErrInvalidScope)
	}
	return nil
}

func (s Scope) String() string {
	return fmt.Sprintf("%s/%s/%s", s.UserID, s.Deck, s.Direction)
}

// ReviewStoreRepository loads and saves whole review stores.
//
// Load is fail-open: a missing document yields an empty store dated today and
// an unreadable one is logged and replaced by an empty store. Only failures to
// reach the backing storage are returned. Save replaces the stored document
// wholesale.
type ReviewStoreRepository[ID domain.ItemID] interface {
	Load(ctx context.Context, scope Scope, today string) (domain.ReviewStore[ID], error)
	Save(ctx context.Context, scope Scope, rs domain.ReviewStore[ID]) error
}
