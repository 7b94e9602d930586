package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/domain"
)

// SettingsStore persists study settings per user and deck.
type SettingsStore interface {
	// Get returns ErrSettingsNotFound if the user never saved settings for deck.
	Get(ctx context.Context, userID uuid.UUID, deck string) (domain.Settings, error)

	// Put creates or replaces the settings for deck.
	Put(ctx context.Context, userID uuid.UUID, deck string, settings domain.Settings) error

	// WithTx returns a SettingsStore that runs on tx.
	WithTx(tx *sql.Tx) SettingsStore
}
