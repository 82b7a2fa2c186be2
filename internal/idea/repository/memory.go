package repository

import (
	"context"
	"sync"

	"github.com/integrationhub/ideaportal/internal/idea"
)

// MemoryStore keeps both documents in process. Loads and saves copy the
// slices, so callers see the same whole-document semantics as the file
// store. Used by tests and by `ideactl --backend memory`.
type MemoryStore struct {
	mu        sync.RWMutex
	ideas     []idea.Idea
	employees []idea.Employee
	saves     int

	// LoadErr and SaveErr, when set, are returned by the matching
	// operations. Tests use them to simulate I/O failures.
	LoadErr error
	SaveErr error
}

func NewMemoryStore(ideas []idea.Idea, employees []idea.Employee) *MemoryStore {
	es := make([]idea.Employee, len(employees))
	copy(es, employees)
	return &MemoryStore{ideas: cloneIdeas(ideas), employees: idea.NormalizeAll(es)}
}

func (m *MemoryStore) LoadIdeas(ctx context.Context) ([]idea.Idea, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.LoadErr != nil {
		return nil, unreadable(CollectionIdeas, m.LoadErr)
	}
	return cloneIdeas(m.ideas), nil
}

func (m *MemoryStore) SaveIdeas(ctx context.Context, ideas []idea.Idea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.ideas = cloneIdeas(ideas)
	m.saves++
	return nil
}

func (m *MemoryStore) LoadEmployees(ctx context.Context) ([]idea.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.LoadErr != nil {
		return nil, unreadable(CollectionEmployees, m.LoadErr)
	}
	out := make([]idea.Employee, len(m.employees))
	copy(out, m.employees)
	return out, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LoadErr
}

// Saves reports how many times SaveIdeas succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
