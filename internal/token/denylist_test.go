package token

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDenylist(t *testing.T) (*RedisDenylist, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
	})

	return NewRedisDenylist(client), mr
}

func TestRedisDenylist_RevokeUntilExpiry(t *testing.T) {
	denylist, mr := setupDenylist(t)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists(revokedKeyPrefix+"jti-1"))

	mr.FastForward(2 * time.Minute)

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisDenylist_IgnoresExpiredTokens(t *testing.T) {
	denylist, mr := setupDenylist(t)

	require.NoError(t, denylist.Revoke(context.Background(), "old", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists(revokedKeyPrefix+"old"))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr)
	assert.Error(t, err)
}

func TestNopDenylist(t *testing.T) {
	var denylist Denylist = NopDenylist{}

	require.NoError(t, denylist.Revoke(context.Background(), "x", time.Now().Add(time.Hour)))
	revoked, err := denylist.IsRevoked(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, revoked)
}
