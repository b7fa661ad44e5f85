package session

import "sync"

// MemoryCache keeps the session in process memory. Used by tests and by
// embedders that do not want the on-disk cache.
type MemoryCache struct {
	mu      sync.Mutex
	session *LocalSession
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Read() (*LocalSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, nil
	}
	copied := *c.session
	return &copied, nil
}

func (c *MemoryCache) Write(s *LocalSession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *s
	c.session = &copied
	return nil
}

func (c *MemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	return nil
}
