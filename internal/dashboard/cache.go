// ABOUTME: Per-key result cache for dashboard recomputation.
// ABOUTME: Single outstanding computation per display key, last-writer-wins.
package dashboard

import "sync"

// resultCache serializes recomputation per display key. Two requests for
// the same key never overlap a computation; the most recent completed
// computation is the one stored.
type resultCache struct {
	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

func newResultCache() *resultCache {
	return &resultCache{keys: make(map[string]*sync.Mutex)}
}

// compute runs fn under the key's lock and returns its result. Results are
// not reused across calls; the lock only prevents overlapping computations
// against the same key.
func (c *resultCache) compute(key string, fn func() (any, error)) (any, error) {
	c.mu.Lock()
	lock, ok := c.keys[key]
	if !ok {
		lock = &sync.Mutex{}
		c.keys[key] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn()
}
