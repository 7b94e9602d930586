package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/store"
)

// ReviewStoreRepository keeps each review store as one JSONB document in the
// review_stores table.
type ReviewStoreRepository[ID domain.ItemID] struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewStoreRepository creates a repository on db. If logger is nil the
// default logger is used.
func NewReviewStoreRepository[ID domain.ItemID](db store.DBTX, logger *slog.Logger) *ReviewStoreRepository[ID] {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewStoreRepository[ID]{
		db:     db,
		logger: logger.With(slog.String("component", "review_store_repository")),
	}
}

// Load implements store.ReviewStoreRepository.Load.
func (r *ReviewStoreRepository[ID]) Load(
	ctx context.Context,
	scope store.Scope,
	today string,
) (domain.ReviewStore[ID], error) {
	log := logger.FromContextOrDefault(ctx, r.logger).With(slog.String("scope", scope.String()))

	if err := scope.Validate(); err != nil {
		return domain.ReviewStore[ID]{}, err
	}

	query := `
		SELECT document
		FROM review_stores
		WHERE user_id = $1 AND deck = $2 AND direction = $3
	`

	var document []byte
	err := r.db.QueryRowContext(ctx, query, scope.UserID, scope.Deck, scope.Direction).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no review store yet, starting fresh")
		return domain.NewReviewStore[ID](today), nil
	}
	if err != nil {
		log.Error("failed to load review store", slog.String("error", err.Error()))
		return domain.ReviewStore[ID]{}, store.NewStoreError("review_store", "load", "query failed", MapError(err))
	}

	var rs domain.ReviewStore[ID]
	if err := json.Unmarshal(document, &rs); err != nil {
		log.Warn("discarding unreadable review store document", slog.String("error", err.Error()))
		return domain.NewReviewStore[ID](today), nil
	}

	log.Debug("review store loaded", slog.Int("records", len(rs.Records)))
	return rs, nil
}

// Save implements store.ReviewStoreRepository.Save.
func (r *ReviewStoreRepository[ID]) Save(ctx context.Context, scope store.Scope, rs domain.ReviewStore[ID]) error {
	log := logger.FromContextOrDefault(ctx, r.logger).With(slog.String("scope", scope.String()))

	if err := scope.Validate(); err != nil {
		return err
	}

	document, err := json.Marshal(rs)
	if err != nil {
		return store.NewStoreError("review_store", "save", "encode failed", err)
	}

	query := `
		INSERT INTO review_stores (user_id, deck, direction, document, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, deck, direction)
		DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, scope.UserID, scope.Deck, scope.Direction, document); err != nil {
		log.Error("failed to save review store", slog.String("error", err.Error()))
		return store.NewStoreError("review_store", "save", "write failed", MapError(err))
	}

	log.Debug("review store saved", slog.Int("records", len(rs.Records)))
	return nil
}

var (
	_ store.ReviewStoreRepository[int]    = (*ReviewStoreRepository[int])(nil)
	_ store.ReviewStoreRepository[string] = (*ReviewStoreRepository[string])(nil)
)
