package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/twitter-clone-api/internal/events"
	"github.com/yukikurage/twitter-clone-api/internal/models"
)

func TestTweetService_Tweet(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	alice := env.signup(t, "alice")

	tweet, err := env.tweets.Tweet(ctx, alice.ID, "  hello world  ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", tweet.Body)
	assert.Equal(t, "alice", tweet.User.Username)
	assert.Empty(t, tweet.Replies)
	assert.Empty(t, tweet.Favorites)

	_, err = env.tweets.Tweet(ctx, alice.ID, "   ")
	assert.ErrorIs(t, err, ErrTweetRequired)

	_, err = env.tweets.Tweet(ctx, alice.ID, strings.Repeat("é", 281))
	assert.ErrorIs(t, err, ErrTweetTooLong)

	_, err = env.tweets.Tweet(ctx, alice.ID, strings.Repeat("é", 280))
	assert.NoError(t, err)

	assert.Equal(t, []string{events.SubjectTweetCreated, events.SubjectTweetCreated}, env.recorder.Subjects())
}

func TestTweetService_Show(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	tweet, err := env.tweets.Tweet(ctx, alice.ID, "hello")
	require.NoError(t, err)
	_, err = env.tweets.Reply(ctx, bob.ID, tweet.ID, "first")
	require.NoError(t, err)
	_, err = env.tweets.Reply(ctx, alice.ID, tweet.ID, "second")
	require.NoError(t, err)

	shown, err := env.tweets.Show(ctx, tweet.ID)
	require.NoError(t, err)
	require.Len(t, shown.Replies, 2)
	assert.Equal(t, "first", shown.Replies[0].Body)
	assert.Equal(t, "bob", shown.Replies[0].User.Username)
	assert.Equal(t, "alice", shown.Replies[1].User.Username)

	_, err = env.tweets.Show(ctx, 9999)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}

func TestTweetService_ReplyToMissingTweet(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	alice := env.signup(t, "alice")

	_, err := env.tweets.Reply(ctx, alice.ID, 9999, "anyone there?")
	assert.ErrorIs(t, err, ErrTweetNotFound)
	assert.Equal(t, int64(0), env.count(t, &models.Reply{}))

	tweet, err := env.tweets.Tweet(ctx, alice.ID, "hello")
	require.NoError(t, err)
	_, err = env.tweets.Reply(ctx, alice.ID, tweet.ID, " ")
	assert.ErrorIs(t, err, ErrReplyRequired)
	assert.Equal(t, int64(0), env.count(t, &models.Reply{}))
}

func TestTweetService_Reply(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	tweet, err := env.tweets.Tweet(ctx, alice.ID, "hello")
	require.NoError(t, err)

	reply, err := env.tweets.Reply(ctx, bob.ID, tweet.ID, "hi alice")
	require.NoError(t, err)
	assert.Equal(t, "bob", reply.User.Username)
	assert.Equal(t, tweet.ID, reply.TweetID)

	msgs := env.recorder.Messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, events.SubjectReplyCreated, last.Subject)
	assert.Equal(t, alice.ID, last.Event.(events.ReplyEvent).TweetOwner)
}

func TestTweetService_DestroyOwnership(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	tweet, err := env.tweets.Tweet(ctx, bob.ID, "mine")
	require.NoError(t, err)

	err = env.tweets.Destroy(ctx, alice.ID, tweet.ID)
	assert.ErrorIs(t, err, ErrTweetNotFound)
	assert.ErrorIs(t, env.tweets.Destroy(ctx, alice.ID, 9999), ErrTweetNotFound)

	var stored models.Tweet
	require.NoError(t, env.db.First(&stored, tweet.ID).Error)
	assert.Equal(t, "mine", stored.Body)
}

func TestTweetService_DestroyCascades(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	tweet, err := env.tweets.Tweet(ctx, alice.ID, "short lived")
	require.NoError(t, err)
	keep, err := env.tweets.Tweet(ctx, alice.ID, "keeper")
	require.NoError(t, err)
	_, err = env.tweets.Reply(ctx, bob.ID, tweet.ID, "reply")
	require.NoError(t, err)
	_, err = env.tweets.Reply(ctx, bob.ID, keep.ID, "reply")
	require.NoError(t, err)
	_, err = env.favorites.Favorite(ctx, bob.ID, tweet.ID)
	require.NoError(t, err)

	require.NoError(t, env.tweets.Destroy(ctx, alice.ID, tweet.ID))

	assert.Equal(t, int64(1), env.count(t, &models.Tweet{}))
	assert.Equal(t, int64(1), env.count(t, &models.Reply{}))
	assert.Equal(t, int64(0), env.count(t, &models.Favorite{}))
	assert.Contains(t, env.recorder.Subjects(), events.SubjectTweetDeleted)
}

func TestTweetService_PublishFailureDoesNotFailWrite(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	alice := env.signup(t, "alice")
	env.recorder.Err = errors.New("broker down")

	tweet, err := env.tweets.Tweet(ctx, alice.ID, "still saved")
	require.NoError(t, err)
	assert.NotZero(t, tweet.ID)
	assert.Equal(t, int64(1), env.count(t, &models.Tweet{}))
}
