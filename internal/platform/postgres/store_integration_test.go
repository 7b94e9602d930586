package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/postgres"
	"github.com/phrazzld/scry-study/internal/store"
	"github.com/phrazzld/scry-study/internal/testdb"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func createUser(t *testing.T, tx *sql.Tx) *domain.User {
	t.Helper()

	user, err := domain.NewUser("learner-"+uuid.NewString()+"@example.com", "correct horse battery", testNow)
	require.NoError(t, err)
	require.NoError(t, postgres.NewUserStore(tx, bcrypt.MinCost, nil).Create(context.Background(), user))
	return user
}

func TestUserStore(t *testing.T) {
	db := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(tx, bcrypt.MinCost, nil)
		user := createUser(t, tx)

		assert.Empty(t, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("correct horse battery")))

		byID, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, byID.Email)

		byEmail, err := users.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		_, err = users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		dup, err := domain.NewUser(user.Email, "another long password", testNow)
		require.NoError(t, err)
		assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)
	})
}

func TestSettingsStore(t *testing.T) {
	db := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		settings := postgres.NewSettingsStore(tx, nil)
		user := createUser(t, tx)

		_, err := settings.Get(ctx, user.ID, "vocabulary")
		assert.ErrorIs(t, err, store.ErrSettingsNotFound)

		require.NoError(t, settings.Put(ctx, user.ID, "vocabulary", domain.Settings{NewItemsPerDay: 15}))
		require.NoError(t, settings.Put(ctx, user.ID, "vocabulary", domain.Settings{NewItemsPerDay: 20}))

		got, err := settings.Get(ctx, user.ID, "vocabulary")
		require.NoError(t, err)
		assert.Equal(t, 20, got.NewItemsPerDay)

		assert.ErrorIs(t, settings.Put(ctx, user.ID, "vocabulary", domain.Settings{}), domain.ErrInvalidSettings)
	})
}

func TestReviewStoreRepository(t *testing.T) {
	db := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		repo := postgres.NewReviewStoreRepository[string](tx, nil)
		user := createUser(t, tx)
		scope := store.Scope{UserID: user.ID, Deck: "vocabulary", Direction: "de-en"}

		fresh, err := repo.Load(ctx, scope, "2024-05-01")
		require.NoError(t, err)
		assert.Empty(t, fresh.Records)
		assert.Equal(t, "2024-05-01", fresh.LastRolloverDate)

		rec := domain.NewReviewRecord("zug", testNow)
		rec.Memory.Stage = domain.StageReview
		rec.Memory.Due = testNow.Add(72 * time.Hour)
		rs := fresh.WithRecord(rec).WithReviewed("zug").WithNewToday("zug")
		require.NoError(t, repo.Save(ctx, scope, rs))

		loaded, err := repo.Load(ctx, scope, "2024-05-01")
		require.NoError(t, err)
		got, ok := loaded.Record("zug")
		require.True(t, ok)
		assert.Equal(t, domain.StageReview, got.Memory.Stage)
		assert.True(t, got.Memory.Due.Equal(rec.Memory.Due))
		assert.True(t, loaded.ReviewedToday.Has("zug"))

		other := scope
		other.Direction = "en-de"
		empty, err := repo.Load(ctx, other, "2024-05-01")
		require.NoError(t, err)
		assert.Empty(t, empty.Records, "directions are stored separately")
	})
}

func TestReviewStoreRepositoryFailsOpenOnCorruptDocument(t *testing.T) {
	db := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		user := createUser(t, tx)

		_, err := tx.ExecContext(ctx,
			`INSERT INTO review_stores (user_id, deck, direction, document) VALUES ($1, 'declension', 'produce', '{"records": 7}')`,
			user.ID)
		require.NoError(t, err)

		repo := postgres.NewReviewStoreRepository[int](tx, nil)
		rs, err := repo.Load(ctx, store.Scope{UserID: user.ID, Deck: "declension", Direction: "produce"}, "2024-05-01")
		require.NoError(t, err)
		assert.Empty(t, rs.Records)
	})
}
