package services

import (
	"sync"
	"time"
)

// pendingPayment is the initiation context kept around until the
// gateway calls back. Some gateway deployments drop the pass-through
// fields, the cache lets the callback recover the case and stage from
// the transaction id alone.
type pendingPayment struct {
	CaseID    string
	Stage     string
	expiresAt time.Time
}

type pendingCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]pendingPayment
}

func newPendingCache(ttl time.Duration) *pendingCache {
	return &pendingCache{
		ttl:   ttl,
		items: make(map[string]pendingPayment),
	}
}

func (c *pendingCache) Put(transactionID, caseID, stage string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[transactionID] = pendingPayment{
		CaseID:    caseID,
		Stage:     stage,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.sweepLocked()
}

// Get looks up the initiation context for a transaction id
func (c *pendingCache) Get(transactionID string) (caseID, stage string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, found := c.items[transactionID]
	if !found || time.Now().After(item.expiresAt) {
		return "", "", false
	}
	return item.CaseID, item.Stage, true
}

func (c *pendingCache) Delete(transactionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, transactionID)
}

// sweepLocked drops expired entries, caller holds the lock
func (c *pendingCache) sweepLocked() {
	now := time.Now()
	for id, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, id)
		}
	}
}
