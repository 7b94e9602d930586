package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/clock"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/service/auth"
	"github.com/phrazzld/scry-study/internal/store"
)

// UserService registers and authenticates accounts.
type UserService interface {
	// Register creates a user and seeds default study settings for every deck
	// in one transaction. Returns store.ErrEmailExists for a taken email.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate returns the user whose credentials match, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// txRunner runs fn in a transaction.
type txRunner func(ctx context.Context, fn store.TxFn) error

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore     store.UserStore
	settingsStore store.SettingsStore
	verifier      auth.PasswordVerifier
	decks         []string
	defaults      domain.Settings
	clock         clock.Clock
	runInTx       txRunner
	logger        *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a UserService. decks are the deck names that get
// defaults at registration.
func NewUserService(
	db *sql.DB,
	userStore store.UserStore,
	settingsStore store.SettingsStore,
	verifier auth.PasswordVerifier,
	decks []string,
	defaults domain.Settings,
	clk clock.Clock,
	logger *slog.Logger,
) *UserServiceImpl {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:     userStore,
		settingsStore: settingsStore,
		verifier:      verifier,
		decks:         decks,
		defaults:      defaults,
		clock:         clk,
		runInTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// Register implements UserService.Register.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password, s.clock.Now())
	if err != nil {
		log.Debug("rejected registration", slog.String("error", err.Error()))
		return nil, err
	}

	err = s.runInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		settings := s.settingsStore.WithTx(tx)
		for _, deck := range s.decks {
			if err := settings.Put(ctx, user.ID, deck, s.defaults); err != nil {
				return fmt.Errorf("seed settings for %s: %w", deck, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to register an existing email")
		} else {
			log.Error("failed to register user", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate implements UserService.Authenticate.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user by email", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("password mismatch", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser implements UserService.GetUser.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}
