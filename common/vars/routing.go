package vars

import (
	"context"
	"sync/atomic"
)

// ProviderCache maps concert ids to ticket provider tags in process memory.
// Reads are lock-free; writes copy the map and swap it in atomically.
type ProviderCache struct {
	ptr atomic.Pointer[map[int32]string]
}

func NewProviderCache() *ProviderCache {
	c := &ProviderCache{}
	empty := make(map[int32]string)
	c.ptr.Store(&empty)
	return c
}

func (c *ProviderCache) Get(_ context.Context, concertId int32) (string, bool, error) {
	provider, ok := (*c.ptr.Load())[concertId]
	return provider, ok, nil
}

// Set overwrites any existing entry. Concurrent writers for the same concert
// store the same tag, so the last write winning is harmless.
func (c *ProviderCache) Set(_ context.Context, concertId int32, provider string) error {
	for {
		old := c.ptr.Load()
		if current, ok := (*old)[concertId]; ok && current == provider {
			return nil
		}

		next := make(map[int32]string, len(*old)+1)
		for k, v := range *old {
			next[k] = v
		}
		next[concertId] = provider

		if c.ptr.CompareAndSwap(old, &next) {
			return nil
		}
	}
}

// Warm adds providers for concerts without an entry.
func (c *ProviderCache) Warm(_ context.Context, providers map[int32]string) error {
	for {
		old := c.ptr.Load()

		next := make(map[int32]string, len(*old)+len(providers))
		for k, v := range providers {
			next[k] = v
		}
		for k, v := range *old {
			next[k] = v
		}

		if c.ptr.CompareAndSwap(old, &next) {
			return nil
		}
	}
}
