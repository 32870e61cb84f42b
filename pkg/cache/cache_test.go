package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestKey(t *testing.T) {
	assert.Equal(t, "organization:42", Key("organization", 42))
	assert.Equal(t, "a:b:c", Key("a", "b", "c"))
	assert.Equal(t, "plain", Key("plain"))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set get delete", func(t *testing.T) {
		c := NewMemoryCache(10)
		defer c.Close()

		require.NoError(t, c.SetWithExpiry(ctx, "k", []byte("v"), time.Minute))
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)

		ok, err := c.Exists(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, c.Delete(ctx, "k"))
		_, err = c.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("entries expire", func(t *testing.T) {
		c := NewMemoryCache(10)
		defer c.Close()

		require.NoError(t, c.SetWithExpiry(ctx, "short", []byte("v"), 20*time.Millisecond))
		require.NoError(t, c.SetWithExpiry(ctx, "long", []byte("v"), time.Minute))

		time.Sleep(60 * time.Millisecond)

		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, ErrMiss)
		ok, _ := c.Exists(ctx, "short")
		assert.False(t, ok)

		_, err = c.Get(ctx, "long")
		assert.NoError(t, err)
	})

	t.Run("least recently used is evicted at capacity", func(t *testing.T) {
		c := NewMemoryCache(2)
		defer c.Close()

		require.NoError(t, c.SetWithExpiry(ctx, "a", []byte("1"), time.Minute))
		require.NoError(t, c.SetWithExpiry(ctx, "b", []byte("2"), time.Minute))
		_, err := c.Get(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, c.SetWithExpiry(ctx, "c", []byte("3"), time.Minute))

		assert.Equal(t, 2, c.Len())
		_, err = c.Get(ctx, "b")
		assert.ErrorIs(t, err, ErrMiss)
		_, err = c.Get(ctx, "a")
		assert.NoError(t, err)
		_, err = c.Get(ctx, "c")
		assert.NoError(t, err)
	})

	t.Run("stored values are copies", func(t *testing.T) {
		c := NewMemoryCache(10)
		defer c.Close()

		buf := []byte("abc")
		require.NoError(t, c.SetWithExpiry(ctx, "k", buf, time.Minute))
		buf[0] = 'x'
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)
	})
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client, "hireova")
	require.NoError(t, c.Ping(ctx))

	require.NoError(t, c.SetWithExpiry(ctx, "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("hireova:k"))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	mr.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.SetWithExpiry(ctx, "k", []byte("v"), time.Minute))
	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, c.Delete(ctx, "k"))
	ok, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)
	defer c.Close()

	require.NoError(t, SetJSON(ctx, c, "p", payload{Name: "Acme"}, time.Minute))

	var got payload
	require.NoError(t, GetJSON(ctx, c, "p", &got))
	assert.Equal(t, "Acme", got.Name)

	assert.ErrorIs(t, GetJSON(ctx, c, "missing", &got), ErrMiss)

	require.NoError(t, c.SetWithExpiry(ctx, "bad", []byte("{"), time.Minute))
	assert.Error(t, GetJSON(ctx, c, "bad", &got))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}
	require.NoError(t, c.SetWithExpiry(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}
