package storage

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memEntry struct {
	value   []byte
	updated time.Time
}

// Memory keeps everything in process memory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]memEntry
	now  func() time.Time
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]memEntry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if _, _, err := splitKey(key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(e.value), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	if _, _, err := splitKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = memEntry{value: slices.Clone(value), updated: m.now()}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Cleanup drops every key of a session whose newest write is older than maxAge.
func (m *Memory) Cleanup(_ context.Context, maxAge time.Duration) (int, error) {
	cutoff := m.now().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	newest := make(map[string]time.Time)
	for k, e := range m.data {
		session, _, _ := splitKey(k)
		if e.updated.After(newest[session]) {
			newest[session] = e.updated
		}
	}
	removed := 0
	for k := range m.data {
		session, _, _ := splitKey(k)
		if newest[session].Before(cutoff) {
			delete(m.data, k)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) Close() error { return nil }
