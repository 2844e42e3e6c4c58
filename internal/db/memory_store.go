package db

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is a process-local backend. Nothing expires and no janitor runs.
type MemoryStore struct {
	items *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

func (store *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	cached, found := store.items.Get(key)
	if !found {
		return nil, false, nil
	}
	value, ok := cached.([]byte)
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (store *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	store.items.Set(key, stored, cache.NoExpiration)
	return nil
}
