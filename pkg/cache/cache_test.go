package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCachePutGet(t *testing.T) {
	c := New[string](time.Hour)
	c.Put("milan", "LIML")

	value, ok := c.Get("milan")
	assert.True(t, ok)
	assert.Equal(t, "LIML", value)
}

func TestCacheMiss(t *testing.T) {
	c := New[string](time.Hour)

	value, ok := c.Get("unknown")
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	c := NewWithClock[string](time.Hour, func() time.Time { return now })

	c.Put("milan", "LIML")

	now = now.Add(59 * time.Minute)
	_, ok := c.Get("milan")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("milan")
	assert.False(t, ok)

	// Expired entries are removed on read.
	assert.Equal(t, 0, c.Len())
}

func TestCacheOverwrite(t *testing.T) {
	c := New[int](time.Hour)
	c.Put("key", 1)
	c.Put("key", 2)

	value, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, 2, value)
	assert.Equal(t, 1, c.Len())
}
