package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPendingCache(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		c := newPendingCache(time.Minute)
		c.Put("LEX-ABC123", "case-1", "Advance")

		caseID, stage, ok := c.Get("LEX-ABC123")
		assert.True(t, ok)
		assert.Equal(t, "case-1", caseID)
		assert.Equal(t, "Advance", stage)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		c := newPendingCache(time.Minute)
		_, _, ok := c.Get("LEX-MISSING")
		assert.False(t, ok)
	})

	t.Run("expired entry is not returned", func(t *testing.T) {
		c := newPendingCache(-time.Second)
		c.Put("LEX-OLD", "case-1", "Final")
		_, _, ok := c.Get("LEX-OLD")
		assert.False(t, ok)
	})

	t.Run("put sweeps expired entries", func(t *testing.T) {
		c := newPendingCache(-time.Second)
		c.Put("LEX-A", "case-1", "Advance")
		c.ttl = time.Minute
		c.Put("LEX-B", "case-2", "Advance")

		c.mu.Lock()
		_, stale := c.items["LEX-A"]
		c.mu.Unlock()
		assert.False(t, stale)

		_, _, ok := c.Get("LEX-B")
		assert.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		c := newPendingCache(time.Minute)
		c.Put("LEX-DEL", "case-1", "Full")
		c.Delete("LEX-DEL")
		_, _, ok := c.Get("LEX-DEL")
		assert.False(t, ok)
	})

	t.Run("overwrite keeps the latest context", func(t *testing.T) {
		c := newPendingCache(time.Minute)
		c.Put("LEX-X", "case-1", "Advance")
		c.Put("LEX-X", "case-1", "Full")
		_, stage, ok := c.Get("LEX-X")
		assert.True(t, ok)
		assert.Equal(t, "Full", stage)
	})
}
