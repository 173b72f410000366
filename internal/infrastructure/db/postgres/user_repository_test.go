package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

var userCols = []string{"id", "email", "username", "password_hash", "role", "avatar_id", "created_at", "updated_at"}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: constraint}
}

func strPtr(s string) *string { return &s }

// anyArgs matches n statement parameters of any value.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestUserRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	user := &domain.User{ID: "u1", Email: "a@b.io", Username: "alice", PasswordHash: "hash", Role: domain.RoleUser, CreatedAt: now, UpdatedAt: now}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantKind  error
		wantMsg   string
	}{
		{
			name: "inserted",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("u1", "a@b.io", "alice", "hash", domain.RoleUser, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "email taken",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO users`).WithArgs(anyArgs(8)...).WillReturnError(uniqueViolation("users_email_key"))
			},
			wantKind: domain.ErrConflict,
			wantMsg:  domain.MsgEmailTaken,
		},
		{
			name: "username taken",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO users`).WithArgs(anyArgs(8)...).WillReturnError(uniqueViolation("users_username_key"))
			},
			wantKind: domain.ErrConflict,
			wantMsg:  domain.MsgUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setupMock(mock)

			err = NewUserRepository(mock).Create(context.Background(), user)
			if tt.wantKind != nil {
				require.ErrorIs(t, err, tt.wantKind)
				assert.Equal(t, tt.wantMsg, domain.Message(err))
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	query := regexp.QuoteMeta(`FROM users WHERE email = $1`)

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now().UTC()
		mock.ExpectQuery(query).WithArgs("a@b.io").
			WillReturnRows(pgxmock.NewRows(userCols).AddRow("u1", "a@b.io", "alice", "hash", "Admin", nil, now, now))

		u, err := NewUserRepository(mock).FindByEmail(context.Background(), "a@b.io")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, domain.RoleAdmin, u.Role)
		assert.Nil(t, u.AvatarID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(query).WithArgs("nobody@b.io").WillReturnRows(pgxmock.NewRows(userCols))

		_, err = NewUserRepository(mock).FindByEmail(context.Background(), "nobody@b.io")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(query).WithArgs("a@b.io").WillReturnError(errors.New("connection refused"))

		_, err = NewUserRepository(mock).FindByEmail(context.Background(), "a@b.io")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestUserRepository_SetAvatar(t *testing.T) {
	t.Run("unknown avatar", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`UPDATE users SET avatar_id`).WithArgs("u1", "ghost").
			WillReturnError(foreignKeyViolation("users_avatar_id_fkey"))

		_, err = NewUserRepository(mock).SetAvatar(context.Background(), "u1", "ghost")
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "Avatar not found", domain.Message(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`UPDATE users SET avatar_id`).WithArgs("ghost", "a1").
			WillReturnRows(pgxmock.NewRows(userCols))

		_, err = NewUserRepository(mock).SetAvatar(context.Background(), "ghost", "a1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserRepository_AvatarURLs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ids := []string{"u1", "u2"}
	mock.ExpectQuery(`LEFT JOIN avatars`).WithArgs(ids).
		WillReturnRows(pgxmock.NewRows([]string{"id", "image_url"}).
			AddRow("u1", strPtr("https://cdn.test/a.png")).
			AddRow("u2", nil))

	got, err := NewUserRepository(mock).AvatarURLs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://cdn.test/a.png", *got[0].ImageURL)
	assert.Nil(t, got[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}
