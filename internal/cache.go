package pooltop

import (
	"context"
	"sync"
)

// Cache wraps a PoolAPI and keeps the pool config for the lifetime of the
// process, since the minimum payout does not change between refreshes
type Cache struct {
	PoolAPI

	mu     sync.Mutex
	config *PoolConfig
}

func (c *Cache) Config(ctx context.Context) (PoolConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.config != nil {
		return *c.config, nil
	}
	cfg, err := c.PoolAPI.Config(ctx)
	if err != nil {
		return PoolConfig{}, err
	}
	c.config = &cfg
	return cfg, nil
}

func (c *Cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = nil
}
