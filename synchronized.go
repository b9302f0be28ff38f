package intdict

import (
	"io"
	"sync"
)

// Synchronized guards a Dictionary with a read/write mutex so it can be
// shared between goroutines.
type Synchronized struct {
	mu sync.RWMutex
	d  *Dictionary
}

// NewSynchronized wraps d. The caller must not use d directly afterwards.
func NewSynchronized(d *Dictionary) *Synchronized {
	return &Synchronized{d: d}
}

// Len returns the number of entries.
func (s *Synchronized) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.d.Len()
}

// Cap returns the allocated capacity.
func (s *Synchronized) Cap() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.d.Cap()
}

// Get returns the value stored for key, or 0 if key is absent.
func (s *Synchronized) Get(key int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.d.Get(key)
}

// Contains reports whether key is present.
func (s *Synchronized) Contains(key int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.d.Contains(key)
}

// Put stores value under key.
func (s *Synchronized) Put(key, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.d.Put(key, value)
}

// Delete removes key.
func (s *Synchronized) Delete(key int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.d.Delete(key)
}

// Entries returns all entries ordered by ascending key.
func (s *Synchronized) Entries() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.d.Entries()
}

// WriteSorted writes the entries ordered by ascending key.
func (s *Synchronized) WriteSorted(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.d.WriteSorted(w)
}

// RenderSorted returns the entries ordered by ascending key.
func (s *Synchronized) RenderSorted() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.d.RenderSorted()
}

// Close closes the wrapped dictionary.
func (s *Synchronized) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.d.Close()
}
