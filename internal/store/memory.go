package store

import "sync"

// MemKV is a map-backed KV with no durability. It backs tests and embedders
// that supply their own persistence medium.
type MemKV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemKV creates an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{m: make(map[string]string)}
}

// GetString returns the value stored under key, or "" if absent.
func (s *MemKV) GetString(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[key], nil
}

// SetString writes value under key.
func (s *MemKV) SetString(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

var _ KV = (*MemKV)(nil)
