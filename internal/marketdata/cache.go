package marketdata

import (
	"sync"
	"time"
)

type entry struct {
	v   any
	exp time.Time
}

// ttlCache keeps recent responses so repeated runs do not hammer the public API.
type ttlCache struct {
	mu sync.RWMutex
	m  map[string]entry
}

func newTTLCache() *ttlCache {
	return &ttlCache{m: make(map[string]entry)}
}

func (c *ttlCache) get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.v, true
}

// set is a no-op for ttl <= 0.
func (c *ttlCache) set(key string, v any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.m[key] = entry{v: v, exp: time.Now().Add(ttl)}
	c.mu.Unlock()
}
