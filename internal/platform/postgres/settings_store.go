package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/store"
)

// SettingsStore implements store.SettingsStore on the study_settings table.
type SettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSettingsStore creates a SettingsStore. If logger is nil the default
// logger is used.
func NewSettingsStore(db store.DBTX, logger *slog.Logger) *SettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

var _ store.SettingsStore = (*SettingsStore)(nil)

// Get implements store.SettingsStore.Get.
func (s *SettingsStore) Get(ctx context.Context, userID uuid.UUID, deck string) (domain.Settings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT new_items_per_day
		FROM study_settings
		WHERE user_id = $1 AND deck = $2
	`

	var settings domain.Settings
	err := s.db.QueryRowContext(ctx, query, userID, deck).Scan(&settings.NewItemsPerDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Settings{}, store.ErrSettingsNotFound
		}
		log.Error("failed to get study settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("deck", deck))
		return domain.Settings{}, MapError(err)
	}

	return settings, nil
}

// Put implements store.SettingsStore.Put.
func (s *SettingsStore) Put(ctx context.Context, userID uuid.UUID, deck string, settings domain.Settings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO study_settings (user_id, deck, new_items_per_day, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, deck)
		DO UPDATE SET new_items_per_day = EXCLUDED.new_items_per_day, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, userID, deck, settings.NewItemsPerDay); err != nil {
		log.Error("failed to save study settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("deck", deck))
		return MapError(err)
	}

	log.Info("study settings saved",
		slog.String("user_id", userID.String()),
		slog.String("deck", deck),
		slog.Int("new_items_per_day", settings.NewItemsPerDay))
	return nil
}

// WithTx implements store.SettingsStore.WithTx.
func (s *SettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return &SettingsStore{db: tx, logger: s.logger}
}
