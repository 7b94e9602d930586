// Package filestore keeps review stores and settings as JSON files on local
// disk. It backs the terminal drill, which runs without a database.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/store"
)

// ReviewStoreRepository stores each scope in
// <dir>/<user id>/<deck>.<direction>.json.
type ReviewStoreRepository[ID domain.ItemID] struct {
	dir    string
	logger *slog.Logger
}

// NewReviewStoreRepository creates a repository rooted at dir. The directory
// is created on first save.
func NewReviewStoreRepository[ID domain.ItemID](dir string, logger *slog.Logger) *ReviewStoreRepository[ID] {
	if dir == "" {
		panic("dir cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewStoreRepository[ID]{
		dir:    dir,
		logger: logger.With(slog.String("component", "file_review_store")),
	}
}

var (
	_ store.ReviewStoreRepository[int]    = (*ReviewStoreRepository[int])(nil)
	_ store.ReviewStoreRepository[string] = (*ReviewStoreRepository[string])(nil)
)

// Load implements store.ReviewStoreRepository.Load.
func (r *ReviewStoreRepository[ID]) Load(
	ctx context.Context,
	scope store.Scope,
	today string,
) (domain.ReviewStore[ID], error) {
	log := logger.FromContextOrDefault(ctx, r.logger).With(slog.String("scope", scope.String()))

	path, err := r.path(scope)
	if err != nil {
		return domain.ReviewStore[ID]{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewReviewStore[ID](today), nil
	}
	if err != nil {
		return domain.ReviewStore[ID]{}, store.NewStoreError("review_store", "load", "read failed", err)
	}

	var rs domain.ReviewStore[ID]
	if err := json.Unmarshal(data, &rs); err != nil {
		log.Warn("discarding unreadable review store file", slog.String("error", err.Error()))
		return domain.NewReviewStore[ID](today), nil
	}
	return rs, nil
}

// Save implements store.ReviewStoreRepository.Save.
func (r *ReviewStoreRepository[ID]) Save(ctx context.Context, scope store.Scope, rs domain.ReviewStore[ID]) error {
	path, err := r.path(scope)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return store.NewStoreError("review_store", "save", "encode failed", err)
	}

	if err := writeAtomic(path, data); err != nil {
		logger.FromContextOrDefault(ctx, r.logger).Error("failed to save review store",
			slog.String("scope", scope.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("review_store", "save", "write failed", err)
	}
	return nil
}

func (r *ReviewStoreRepository[ID]) path(scope store.Scope) (string, error) {
	if err := scope.Validate(); err != nil {
		return "", err
	}
	for _, part := range []string{scope.Deck, scope.Direction} {
		if strings.ContainsAny(part, `/\`) || part == "." || part == ".." {
			return "", fmt.Errorf("%w: %q", store.ErrInvalidScope, part)
		}
	}
	name := scope.Deck + "." + scope.Direction + ".json"
	return filepath.Join(r.dir, scope.UserID.String(), name), nil
}

// writeAtomic replaces path with data through a temporary file in the same
// directory, so readers never see a partial document.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
