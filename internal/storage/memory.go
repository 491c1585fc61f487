package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/maheshk/workpulse/internal/domain"
)

// MemoryStore is an in-process ObjectStore used by tests and the simulator.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return key, nil
}

func (s *MemoryStore) Delete(ctx context.Context, locator string) error {
	s.mu.Lock()
	delete(s.objects, locator)
	s.mu.Unlock()
	return nil
}

// Get is a test helper; it is not part of the ObjectStore contract.
func (s *MemoryStore) Get(locator string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[locator]
	return data, ok
}

// Len is a test helper reporting the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
