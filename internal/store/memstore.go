package store

import (
	"sync"

	"checkers/internal/table"
)

// MemoryStore keeps the most recent finished games for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	order   []string
	records map[string]table.Record
}

// NewMemoryStore keeps at most limit records; limit <= 0 means unbounded.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{
		limit:   limit,
		records: map[string]table.Record{},
	}
}

func (m *MemoryStore) GetRecord(gameID string) (table.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[gameID]
	return r, ok
}

func (m *MemoryStore) SaveRecord(r table.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[r.GameID]; !ok {
		m.order = append(m.order, r.GameID)
	}
	m.records[r.GameID] = r

	for m.limit > 0 && len(m.order) > m.limit {
		delete(m.records, m.order[0])
		m.order = m.order[1:]
	}
}

// Records returns newest first.
func (m *MemoryStore) Records() []table.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]table.Record, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.records[m.order[i]])
	}
	return out
}
