// Package rate turns cumulative OS counters into per-second rates.
//
// Each tracked counter stream keeps exactly one baseline: the previous
// reading. The first reading of a stream only establishes the baseline and
// produces no rate.
package rate

import (
	"fmt"
	"sync"
	"time"
)

// Stream names used by the sampler.
const (
	NetSent   = "net-sent"
	NetRecv   = "net-recv"
	DiskRead  = "disk-read"
	DiskWrite = "disk-write"
)

// KB divides raw byte counters into kilobytes.
const KB = 1024

// Reading is a cumulative counter value and the wall-clock time it was
// captured.
type Reading struct {
	Value uint64
	At    time.Time
}

// Compute returns (cur-prev)/elapsed/divisor. It reports false when the
// elapsed time is not positive or the counter went backwards. A divisor of
// zero or less is treated as 1.
func Compute(prev, cur Reading, divisor float64) (float64, bool) {
	elapsed := cur.At.Sub(prev.At).Seconds()
	if elapsed <= 0 {
		return 0, false
	}
	if cur.Value < prev.Value {
		return 0, false
	}
	if divisor <= 0 {
		divisor = 1
	}
	return float64(cur.Value-prev.Value) / elapsed / divisor, true
}

// Tracker holds one baseline per counter stream.
type Tracker struct {
	divisor float64

	mu        sync.Mutex
	baselines map[string]Reading
}

// NewTracker creates a tracker that reports rates in units of divisor
// bytes per second (use KB for KB/s).
func NewTracker(divisor float64) *Tracker {
	if divisor <= 0 {
		divisor = 1
	}
	return &Tracker{
		divisor:   divisor,
		baselines: make(map[string]Reading),
	}
}

// Observe feeds a new reading for stream and returns the rate since the
// stored baseline. The reading always becomes the new baseline, even when no
// rate can be produced.
func (t *Tracker) Observe(stream string, cur Reading) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, ok := t.baselines[stream]
	t.baselines[stream] = cur
	if !ok {
		return 0, false
	}
	return Compute(prev, cur, t.divisor)
}

// Baseline returns the stored reading for stream, if any.
func (t *Tracker) Baseline(stream string) (Reading, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.baselines[stream]
	return r, ok
}

// Label names the per-second unit a divisor produces, e.g. "KB/s" for KB.
func Label(divisor float64) string {
	switch divisor {
	case 0, 1:
		return "B/s"
	case 1000:
		return "kB/s"
	case KB:
		return "KB/s"
	case KB * KB:
		return "MB/s"
	default:
		return fmt.Sprintf("x%gB/s", divisor)
	}
}
