// Package metrics provides in-memory timing collection for the data
// generation pipeline. A Store accumulates append-only sample histories
// keyed by operation name and is safe for concurrent use.
package metrics

import (
	"sync"
	"time"
)

// Sample represents one recorded timing measurement.
type Sample struct {
	Operation  string             `json:"operation"`
	DurationMs float64            `json:"duration_ms"`
	Time       time.Time          `json:"time"`
	Fields     map[string]float64 `json:"fields,omitempty"`
	Tags       map[string]string  `json:"tags,omitempty"`
}

// Store accumulates timing samples keyed by operation name.
// Samples are append-only per operation; Reset clears all history.
// The store is unbounded, callers control memory via Reset.
type Store struct {
	samples map[string][]Sample
	mu      sync.RWMutex
}

// NewStore creates an empty metrics store.
func NewStore() *Store {
	return &Store{
		samples: make(map[string][]Sample),
	}
}

// Append records a sample under its operation name.
func (s *Store) Append(sample Sample) {
	if sample.Time.IsZero() {
		sample.Time = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples[sample.Operation] = append(s.samples[sample.Operation], sample)
}

// Get returns the full sample history for one operation, in append order.
// The returned slice is a copy, callers may retain it.
func (s *Store) Get(operation string) []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.samples[operation]
	if !ok {
		return nil
	}
	result := make([]Sample, len(history))
	copy(result, history)
	return result
}

// All returns the full sample history for every operation.
func (s *Store) All() map[string][]Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]Sample, len(s.samples))
	for op, history := range s.samples {
		cp := make([]Sample, len(history))
		copy(cp, history)
		result[op] = cp
	}
	return result
}

// Count returns the number of samples recorded for an operation.
func (s *Store) Count(operation string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples[operation])
}

// Reset clears all stored history.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = make(map[string][]Sample)
}
