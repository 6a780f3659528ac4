package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_BasicOperations(t *testing.T) {
	c := New[string](5*time.Minute, 10*time.Minute)

	t.Run("Set and Get", func(t *testing.T) {
		c.Set("key1", "value1")

		val, found := c.Get("key1")
		require.True(t, found)
		assert.Equal(t, "value1", val)
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		val, found := c.Get("nonexistent")
		assert.False(t, found)
		assert.Equal(t, "", val)
	})

	t.Run("Set and Delete", func(t *testing.T) {
		c.Set("key2", "value2")
		c.Delete("key2")

		_, found := c.Get("key2")
		assert.False(t, found)
	})

	t.Run("Clear", func(t *testing.T) {
		c.Set("a", "1")
		c.Set("b", "2")
		c.Clear()
		assert.Equal(t, 0, c.ItemCount())
	})
}

func TestCache_SetWithTTL(t *testing.T) {
	c := New[int](5*time.Minute, 10*time.Minute)

	c.SetWithTTL("short", 1, 10*time.Millisecond)
	c.Set("long", 2)

	require.Eventually(t, func() bool {
		_, found := c.Get("short")
		return !found
	}, time.Second, 5*time.Millisecond)

	v, found := c.Get("long")
	require.True(t, found)
	assert.Equal(t, 2, v)
}

func TestCache_GetOrLoad(t *testing.T) {
	c := New[string](time.Minute, time.Minute)

	calls := 0
	load := func() (string, error) {
		calls++
		return "loaded", nil
	}

	v, err := c.GetOrLoad("k", load)
	require.NoError(t, err)
	assert.Equal(t, "loaded", v)

	v, err = c.GetOrLoad("k", load)
	require.NoError(t, err)
	assert.Equal(t, "loaded", v)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err = c.GetOrLoad("bad", func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	_, found := c.Get("bad")
	assert.False(t, found)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute, time.Minute)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%26))
			c.Set(key, n)
			c.Get(key)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.ItemCount(), 26)
}
