package sessions

import (
	"errors"
	"sync"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore is a process local Store. Entries are lost on restart and are
// not shared between instances.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]UpstreamToken
}

// NewInMemoryStore creates an empty in-memory session store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string]UpstreamToken),
	}
}

// Set stores or replaces the token for a credential
func (s *InMemoryStore) Set(credential string, token UpstreamToken) error {
	if credential == "" {
		return errors.New("credential cannot be empty")
	}
	if token == "" {
		return errors.New("upstream token cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[credential] = token
	return nil
}

func (s *InMemoryStore) Get(credential string) (UpstreamToken, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.entries[credential]
	return token, ok
}

func (s *InMemoryStore) Has(credential string) bool {
	_, ok := s.Get(credential)
	return ok
}

// Delete removes a credential, missing entries are ignored
func (s *InMemoryStore) Delete(credential string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, credential)
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]UpstreamToken)
}

func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
