package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"slideforge/internal/apperrors"
	"slideforge/internal/testutil"
)

func Test_UserRepo(t *testing.T) {
	t.Parallel() // It's ok to run in parallel with other tests, but not with subtests

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("create user ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			user, err := repo.CreateUser(t.Context(), "testuser", "hashed-password")

			require.NoError(t, err)
			require.NotEqual(t, uuid.Nil, user.ID, "user id should be generated")
			require.Equal(t, "testuser", user.Username)
			require.Equal(t, "hashed-password", user.HashedPassword)
			require.NotZero(t, user.CreatedAt)
		})
	})

	t.Run("create duplicate username fails", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.CreateUser(t.Context(), "testuser", "hashed-password")
			require.NoError(t, err)

			_, err = repo.CreateUser(t.Context(), "testuser", "other-password")

			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
		})
	})

	t.Run("get by id ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}
			created, err := repo.CreateUser(t.Context(), "testuser", "hashed-password")
			require.NoError(t, err)

			got, err := repo.GetUserByID(t.Context(), created.ID)

			require.NoError(t, err)
			require.Equal(t, created.ID, got.ID)
			require.Equal(t, created.Username, got.Username)
		})
	})

	t.Run("get by username ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}
			created, err := repo.CreateUser(t.Context(), "testuser", "hashed-password")
			require.NoError(t, err)

			got, err := repo.GetUserByUsername(t.Context(), "testuser")

			require.NoError(t, err)
			require.Equal(t, created.ID, got.ID)
		})
	})

	t.Run("get not existed user", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.GetUserByID(t.Context(), uuid.New())
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)

			_, err = repo.GetUserByUsername(t.Context(), "nobody")
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})
}
