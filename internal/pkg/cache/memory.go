package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryItem struct {
	value     string
	expiresAt time.Time // zero = sem expiração
}

// MemoryClient é um Client em memória, usado quando não há Redis configurado e nos testes.
type MemoryClient struct {
	mu    sync.Mutex
	items map[string]memoryItem
	lists map[string][]string
	now   func() time.Time
}

// NewMemoryClient cria um cache vazio.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		items: make(map[string]memoryItem),
		lists: make(map[string][]string),
		now:   time.Now,
	}
}

func (c *MemoryClient) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return "", ErrCacheMiss
	}
	if !item.expiresAt.IsZero() && !c.now().Before(item.expiresAt) {
		delete(c.items, key)
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (c *MemoryClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := memoryItem{value: toString(value)}
	if expiration > 0 {
		item.expiresAt = c.now().Add(expiration)
	}
	c.items[key] = item
	return nil
}

func (c *MemoryClient) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	delete(c.lists, key)
	return nil
}

func (c *MemoryClient) Push(_ context.Context, key string, values ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range values {
		c.lists[key] = append(c.lists[key], toString(v))
	}
	return nil
}

// List devolve uma cópia da lista key.
func (c *MemoryClient) List(key string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.lists[key]))
	copy(out, c.lists[key])
	return out
}

func (c *MemoryClient) Close() error { return nil }

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
