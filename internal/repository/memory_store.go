package repository

import (
	"context"
	"strconv"
	"sync"
)

// memoryStore keeps settings for the lifetime of the process only.
type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() KeyValueStore {
	return &memoryStore{
		values: make(map[string]string),
	}
}

func (that *memoryStore) GetString(_ context.Context, key string) (string, bool, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.values[key]

	return value, ok, nil
}

func (that *memoryStore) GetInt(ctx context.Context, key string) (int, bool, error) {
	return getInt(ctx, that, key)
}

func (that *memoryStore) SetString(_ context.Context, key, value string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values[key] = value

	return nil
}

func (that *memoryStore) SetInt(ctx context.Context, key string, value int) error {
	return that.SetString(ctx, key, strconv.Itoa(value))
}

func (that *memoryStore) SetStrings(_ context.Context, values map[string]string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	for key, value := range values {
		that.values[key] = value
	}

	return nil
}
