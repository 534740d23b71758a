package snapshot

import (
	"context"
	"sync"
)

// Memory is a map-backed slot store. It backs the memory data backend and
// gives tests a persistence target they can inspect and pre-seed.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte

	// FailSaves makes every Save return this error when non-nil. Tests use
	// it to exercise the fire-and-forget persistence path.
	FailSaves error
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

func (m *Memory) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves != nil {
		return m.FailSaves
	}
	m.slots[key] = append([]byte(nil), payload...)
	return nil
}

// Seed sets a slot directly, bypassing Save semantics.
func (m *Memory) Seed(key string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), payload...)
}
