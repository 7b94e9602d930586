package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-study/internal/clock"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/store"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// newTestUserService builds a service whose transactions just call through,
// recording whether the body failed.
func newTestUserService(
	users *MockUserStore,
	settings *MockSettingsStore,
	verifier *MockPasswordVerifier,
) (*UserServiceImpl, *[]error) {
	var txResults []error
	return &UserServiceImpl{
		userStore:     users,
		settingsStore: settings,
		verifier:      verifier,
		decks:         []string{"declension", "vocabulary"},
		defaults:      domain.Settings{NewItemsPerDay: 15},
		clock:         clock.NewManual(testNow),
		runInTx: func(ctx context.Context, fn store.TxFn) error {
			err := fn(ctx, nil)
			txResults = append(txResults, err)
			return err
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, &txResults
}

func TestRegister_SeedsSettingsInOneTransaction(t *testing.T) {
	t.Parallel()

	users := new(MockUserStore)
	settings := new(MockSettingsStore)
	svc, txs := newTestUserService(users, settings, new(MockPasswordVerifier))

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "alice@example.com" && u.Password == "a-long-password"
	})).Return(nil)
	settings.On("Put", mock.Anything, mock.AnythingOfType("uuid.UUID"), "declension", domain.Settings{NewItemsPerDay: 15}).Return(nil)
	settings.On("Put", mock.Anything, mock.AnythingOfType("uuid.UUID"), "vocabulary", domain.Settings{NewItemsPerDay: 15}).Return(nil)

	user, err := svc.Register(context.Background(), "alice@example.com", "a-long-password")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, testNow, user.CreatedAt)
	assert.Len(t, *txs, 1)

	users.AssertExpectations(t)
	settings.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	t.Parallel()

	users := new(MockUserStore)
	settings := new(MockSettingsStore)
	svc, _ := newTestUserService(users, settings, new(MockPasswordVerifier))

	users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

	_, err := svc.Register(context.Background(), "alice@example.com", "a-long-password")
	assert.ErrorIs(t, err, store.ErrEmailExists)
	settings.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_SettingsFailureFailsRegistration(t *testing.T) {
	t.Parallel()

	users := new(MockUserStore)
	settings := new(MockSettingsStore)
	svc, txs := newTestUserService(users, settings, new(MockPasswordVerifier))

	boom := errors.New("disk full")
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	settings.On("Put", mock.Anything, mock.Anything, "declension", mock.Anything).Return(boom)

	_, err := svc.Register(context.Background(), "alice@example.com", "a-long-password")
	assert.ErrorIs(t, err, boom)
	require.Len(t, *txs, 1)
	assert.Error(t, (*txs)[0])
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()

	users := new(MockUserStore)
	svc, txs := newTestUserService(users, new(MockSettingsStore), new(MockPasswordVerifier))

	_, err := svc.Register(context.Background(), "not-an-email", "a-long-password")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Register(context.Background(), "alice@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	assert.Empty(t, *txs)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	stored := &domain.User{ID: uuid.New(), Email: "alice@example.com", HashedPassword: "hash"}

	tests := []struct {
		name      string
		lookupErr error
		compare   error
		wantErr   error
	}{
		{name: "valid credentials"},
		{name: "unknown email", lookupErr: store.ErrUserNotFound, wantErr: ErrInvalidCredentials},
		{name: "wrong password", compare: errors.New("mismatch"), wantErr: ErrInvalidCredentials},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			users := new(MockUserStore)
			verifier := new(MockPasswordVerifier)
			svc, _ := newTestUserService(users, new(MockSettingsStore), verifier)

			if tc.lookupErr != nil {
				users.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, tc.lookupErr)
			} else {
				users.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
				verifier.On("Compare", "hash", "a-long-password").Return(tc.compare)
			}

			user, err := svc.Authenticate(context.Background(), "alice@example.com", "a-long-password")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored.ID, user.ID)
		})
	}
}

func TestAuthenticate_StoreFailureIsNotCredentialsError(t *testing.T) {
	t.Parallel()

	users := new(MockUserStore)
	svc, _ := newTestUserService(users, new(MockSettingsStore), new(MockPasswordVerifier))

	boom := errors.New("connection refused")
	users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := svc.Authenticate(context.Background(), "alice@example.com", "a-long-password")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
