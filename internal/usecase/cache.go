package usecase

import (
	"context"
	"sync"

	"cv-renderer/internal/model"
)

// MemoryCache is an in-process TemplateCache.
type MemoryCache struct {
	mu   sync.RWMutex
	defs map[string]*model.TemplateDefinition
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{defs: make(map[string]*model.TemplateDefinition)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*model.TemplateDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[key]
	return def, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, def *model.TemplateDefinition) {
	if def == nil {
		return
	}
	c.mu.Lock()
	c.defs[key] = def
	c.mu.Unlock()
}

func (c *MemoryCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.defs, key)
	c.mu.Unlock()
	return nil
}

// Len reports the number of cached definitions.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}
