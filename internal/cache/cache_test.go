package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet error
	failSet error
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.failSet != nil {
		return redis.NewStatusResult("", f.failSet)
	}
	f.data[key] = value.([]byte)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisRoundTrip(t *testing.T) {
	fake := newFakeRedis()
	c := newRedis(fake, 5*time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "/games?year=2025")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "/games?year=2025", []byte(`[{"id":1}]`)))
	assert.Equal(t, 5*time.Minute, fake.ttls[keyPrefix+"/games?year=2025"])

	body, ok, err := c.Get(ctx, "/games?year=2025")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":1}]`, string(body))

	require.NoError(t, c.Close())
	assert.True(t, fake.closed)
}

func TestRedisErrorsAreWrapped(t *testing.T) {
	fake := newFakeRedis()
	fake.failGet = errors.New("conn refused")
	fake.failSet = errors.New("readonly")
	c := newRedis(fake, time.Minute)

	_, ok, err := c.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "conn refused")

	err = c.Set(context.Background(), "k", []byte("v"))
	assert.ErrorContains(t, err, "readonly")
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}
