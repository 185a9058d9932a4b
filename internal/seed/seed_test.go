package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/twitter-clone-api/internal/database"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return int(n)
}

func TestSeeder_Run(t *testing.T) {
	db := setupSeedDB(t)

	opts := Options{
		Users:         4,
		TweetsPerUser: 2,
		MaxReplies:    2,
		MaxFollows:    3,
		MaxFavorites:  3,
		Seed:          42,
	}

	result, err := NewSeeder(db, opts).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Users)
	assert.Equal(t, 8, result.Tweets)
	assert.Equal(t, result.Users, count(t, db, &models.User{}))
	assert.Equal(t, result.Tweets, count(t, db, &models.Tweet{}))
	assert.Equal(t, result.Replies, count(t, db, &models.Reply{}))
	assert.Equal(t, result.Follows, count(t, db, &models.Follower{}))
	assert.Equal(t, result.Favorites, count(t, db, &models.Favorite{}))

	var selfFollows int64
	require.NoError(t, db.Model(&models.Follower{}).Where("user_id = follower_id").Count(&selfFollows).Error)
	assert.Zero(t, selfFollows)
}

func TestSeeder_UsersCanLogIn(t *testing.T) {
	db := setupSeedDB(t)

	_, err := NewSeeder(db, Options{Users: 2, Seed: 7}).Run(context.Background())
	require.NoError(t, err)

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 2)

	for _, user := range users {
		assert.Regexp(t, `^[a-z0-9_-]+$`, user.Username)
		assert.Equal(t, user.Username+"@example.com", user.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(DefaultPassword)))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "日本", truncate("日本語", 2))
}
