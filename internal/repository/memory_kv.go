package repository

import (
	"context"
	"sync"

	"github.com/nikolayk812/gomarketplace-cart/internal/port"
)

type memoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryKV() port.KVStore {
	return &memoryKV{
		items: make(map[string]string),
	}
}

func (m *memoryKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	return value, ok, nil
}

func (m *memoryKV) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	return nil
}

func (m *memoryKV) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}
