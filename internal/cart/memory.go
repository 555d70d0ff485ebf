package cart

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepository is an in-process Repository used by tests and local runs
// without Redis. It round-trips through JSON so stored carts share the slot
// semantics of the Redis repository.
type MemoryRepository struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{slots: map[string][]byte{}}
}

func (m *MemoryRepository) Load(_ context.Context, deviceID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.slots[deviceID]
	if !ok {
		return &Cart{}, nil
	}
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (m *MemoryRepository) Save(_ context.Context, deviceID string, cart *Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[deviceID] = raw
	return nil
}

func (m *MemoryRepository) Clear(_ context.Context, deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, deviceID)
	return nil
}
