package recordstore

import (
	"context"
	"encoding/json"
	"sync"

	"release-gateway/pkg/platform/sentinel"
)

// InMemoryStore keeps documents in process memory. It is the default backend
// for the demo and the workhorse of unit tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[Key][]byte
	hub    *hub
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		values: make(map[Key][]byte),
		hub:    newHub(),
	}
}

func (s *InMemoryStore) Load(_ context.Context, key Key) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *InMemoryStore) Save(_ context.Context, key Key, value json.RawMessage) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.values[key] = stored
	s.mu.Unlock()

	// Local notification is synchronous: by the time Save returns, every
	// subscriber has observed the change.
	s.hub.notify(key, OriginLocal)
	return nil
}

func (s *InMemoryStore) Subscribe(key Key, fn ChangeFunc) (cancel func()) {
	return s.hub.add(key, fn)
}

// EmitExternal injects an external-origin change notification. The memory
// backend has no real external writers; this is the seam that keeps the
// external re-load path testable without a Redis or Postgres instance.
func (s *InMemoryStore) EmitExternal(key Key) {
	s.hub.notify(key, OriginExternal)
}
