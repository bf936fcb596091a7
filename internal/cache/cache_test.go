package cache

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIgnoresParameterOrder(t *testing.T) {
	a := Key("/api/pm/metrics", url.Values{"building": {"Tower"}, "status": {"open", "closed"}})
	b := Key("/api/pm/metrics", url.Values{"status": {"closed", "open"}, "building": {"Tower"}})
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "pm:resp:/api/pm/metrics:"))
}

func TestKeyDistinguishesRoutesAndValues(t *testing.T) {
	q := url.Values{"building": {"Tower"}}
	assert.NotEqual(t, Key("/api/pm/metrics", q), Key("/api/pm/calendar", q))
	assert.NotEqual(t, Key("/api/pm/metrics", q), Key("/api/pm/metrics", url.Values{"building": {"Annex"}}))
	assert.NotEqual(t, Key("/api/pm/metrics", nil), Key("/api/pm/metrics", q))
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis("not-a-redis-url", time.Minute)
	assert.Error(t, err)
}

func TestRedisCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedis(redisURL, time.Minute)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Ping(ctx))

	key := Key("/test", url.Values{"n": {time.Now().Format(time.RFC3339Nano)}})
	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, key, []byte(`{"ok":true}`)))
	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"ok":true}`, string(got))
}
