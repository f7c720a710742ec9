// Package history provides the bounded rolling buffers that feed the charts.
// A History keeps the most recent samples in insertion order and evicts the
// oldest one once its capacity is exceeded.
package history

import "sync"

// DefaultCapacity is the number of samples kept per chart.
const DefaultCapacity = 100

// Entry pairs a sample with its position in the history at snapshot time.
// The index is positional and regenerated on every Snapshot call.
type Entry[T any] struct {
	Index int `json:"index"`
	Value T   `json:"value"`
}

// History is a fixed-capacity FIFO of samples.
// It is safe for one writer and any number of concurrent readers.
type History[T any] struct {
	mu       sync.RWMutex
	samples  []T
	capacity int
}

// New creates an empty history. A non-positive capacity falls back to
// DefaultCapacity.
func New[T any](capacity int) *History[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History[T]{
		samples:  make([]T, 0, capacity+1),
		capacity: capacity,
	}
}

// Append adds a sample to the tail and drops exactly one sample from the
// head when the history grows past its capacity.
func (h *History[T]) Append(sample T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples = append(h.samples, sample)
	if len(h.samples) > h.capacity {
		// Shift in place so the backing array never grows past capacity+1.
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}
}

// Snapshot returns the current contents, oldest first, each paired with its
// 0-based position.
func (h *History[T]) Snapshot() []Entry[T] {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Entry[T], len(h.samples))
	for i, s := range h.samples {
		out[i] = Entry[T]{Index: i, Value: s}
	}
	return out
}

// Values returns a copy of the samples without indices, oldest first.
func (h *History[T]) Values() []T {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]T, len(h.samples))
	copy(out, h.samples)
	return out
}

// Len returns the number of samples currently held.
func (h *History[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// Cap returns the configured capacity.
func (h *History[T]) Cap() int { return h.capacity }
