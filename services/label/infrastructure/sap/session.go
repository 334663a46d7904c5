package sap

import (
	"context"
	"sync"

	"github.com/ghuser/bomlabel/pkg/cache"
)

// SessionStore persists the current Service Layer session.
// Get returns nil without error when no session is stored.
type SessionStore interface {
	Get(ctx context.Context) (*cache.SAPSession, error)
	Set(ctx context.Context, s *cache.SAPSession) error
	Delete(ctx context.Context) error
}

// MemorySessionStore keeps the session in process memory.
type MemorySessionStore struct {
	mu      sync.Mutex
	session *cache.SAPSession
}

// NewMemorySessionStore returns an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Get(context.Context) (*cache.SAPSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	s := *m.session
	return &s, nil
}

func (m *MemorySessionStore) Set(_ context.Context, s *cache.SAPSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.session = &cp
	return nil
}

func (m *MemorySessionStore) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
