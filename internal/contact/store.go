package contact

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Store kinds accepted by Open.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Store persists inquiries.
type Store interface {
	Save(ctx context.Context, rec Record) error
	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// Open returns the store named by kind. dsn is only used by sqlite.
func Open(ctx context.Context, kind, dsn string) (Store, error) {
	switch kind {
	case StoreMemory, "":
		return NewMemoryStore(), nil
	case StoreSQLite:
		s, err := OpenSQLStore(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown contact store %q", kind)
	}
}

// MemoryStore keeps inquiries in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	out := slices.Clone(m.records)
	m.mu.Unlock()

	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
