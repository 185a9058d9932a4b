package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		username      string
		mockBehavior  func()
		expectedError error
	}{
		{
			name:     "Found",
			username: "alice",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "username", "email", "password"}).
					AddRow(1, "Alice", "alice", "alice@example.com", "hash")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs("alice", 1).
					WillReturnRows(rows)
			},
		},
		{
			name:     "Not Found",
			username: "nobody",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
					WithArgs("nobody", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedError: gorm.ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.FindByUsername(ctx, tt.username)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else if assert.NoError(t, err) {
				assert.Equal(t, "alice@example.com", user.Email)
				assert.Equal(t, "hash", user.PasswordHash)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	user := &models.User{Name: "Alice", Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, uint64(42), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_FindOwned_UsesSingleLookup(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tweets" WHERE id = $1 AND user_id = $2`)).
		WithArgs(5, 7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tweet", "created_at", "updated_at"}).
			AddRow(5, 7, "hello", now, now))

	tweet, err := repo.FindOwned(ctx, 5, 7)
	require.NoError(t, err)
	assert.Equal(t, "hello", tweet.Body)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tweets" WHERE id = $1 AND user_id = $2`)).
		WithArgs(5, 8, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.FindOwned(ctx, 5, 8)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowerRepository_FollowIgnoresDuplicates(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowerRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "followers" .*ON CONFLICT .*DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(t, repo.Follow(context.Background(), 1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowerRepository_Unfollow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "followers" WHERE user_id = $1 AND follower_id = $2`)).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Unfollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
