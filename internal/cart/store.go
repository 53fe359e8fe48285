package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// schemaVersion is written into every persisted payload so a future
// layout change can migrate instead of discarding carts.
const schemaVersion = 1

// Store persists the serialized cart of one session under a single key.
type Store interface {
	Load(ctx context.Context, key string) ([]Item, error)
	Save(ctx context.Context, key string, items []Item) error
	Delete(ctx context.Context, key string) error
}

type payload struct {
	SchemaVersion int    `json:"schemaVersion"`
	Items         []Item `json:"items"`
}

func encodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(payload{SchemaVersion: schemaVersion, Items: items})
}

func decodeItems(data []byte) ([]Item, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("unsupported cart schema version %d", p.SchemaVersion)
	}
	return p.Items, nil
}

// MemoryStore keeps serialized carts in a map. Used by tests and as a
// fallback when Redis is not configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, key string) ([]Item, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return decodeItems(raw)
}

func (m *MemoryStore) Save(ctx context.Context, key string, items []Item) error {
	raw, err := encodeItems(items)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Corrupt overwrites a key with an unparseable payload. Test helper.
func (m *MemoryStore) Corrupt(key string) {
	m.mu.Lock()
	m.data[key] = []byte("{not json")
	m.mu.Unlock()
}
