package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/family-gazette-api/internal/generator"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis answers GET and SET from memory; any other command panics
type fakeRedis struct {
	redis.Cmdable
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestKey(t *testing.T) {
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)
	next := time.Date(2024, 5, 2, 0, 0, 1, 0, time.UTC)

	k := Key("birthday", "cake.jpg", day)
	assert.True(t, strings.HasPrefix(k, KeyPrefix))
	assert.Len(t, strings.TrimPrefix(k, KeyPrefix), 64)
	assert.Equal(t, k, Key("birthday", "cake.jpg", later), "same day shares a key")
	assert.NotEqual(t, k, Key("birthday", "cake.jpg", next))
	assert.NotEqual(t, k, Key("birthday", "cake2.jpg", day))
}

func TestNoop(t *testing.T) {
	c := NewNoop()
	require.NoError(t, c.Set(context.Background(), "k", &generator.Article{Headline: "x"}))
	got, ok, err := c.Get(context.Background(), "k")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedis_RoundTrip(t *testing.T) {
	fake := newFakeRedis()
	c := NewRedisWithClient(fake, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	article := &generator.Article{
		Headline: "Sparkling Cheers",
		Body:     []string{"one", "two"},
		Tags:     []string{"Celebrations"},
	}
	require.NoError(t, c.Set(ctx, "k", article))
	assert.Equal(t, time.Hour, fake.ttls["k"])

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, article, got)
}

func TestRedis_Errors(t *testing.T) {
	fake := newFakeRedis()
	c := NewRedisWithClient(fake, time.Hour)
	ctx := context.Background()

	fake.data["corrupt"] = "{not json"
	_, ok, err := c.Get(ctx, "corrupt")
	assert.Error(t, err)
	assert.False(t, ok)

	fake.failGet = errors.New("connection refused")
	_, _, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, fake.failGet)
}
