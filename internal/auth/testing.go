package auth

import "github.com/99designs/keyring"

// MemoryProvider is an in-memory Provider for tests.
type MemoryProvider struct {
	items map[string]keyring.Item
}

// NewMemoryProvider returns an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{items: make(map[string]keyring.Item)}
}

func (m *MemoryProvider) Get(key string) (keyring.Item, error) {
	item, ok := m.items[key]
	if !ok {
		return keyring.Item{}, keyring.ErrKeyNotFound
	}
	return item, nil
}

func (m *MemoryProvider) Set(item keyring.Item) error {
	m.items[item.Key] = item
	return nil
}

func (m *MemoryProvider) Remove(key string) error {
	if _, ok := m.items[key]; !ok {
		return keyring.ErrKeyNotFound
	}
	delete(m.items, key)
	return nil
}

// UseMemoryProvider installs a fresh MemoryProvider until cleanup runs.
func UseMemoryProvider(cleanup func(func())) *MemoryProvider {
	m := NewMemoryProvider()
	SetProviderFunc(func() (Provider, error) { return m, nil })
	cleanup(func() { SetProviderFunc(nil) })
	return m
}
