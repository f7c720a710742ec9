package history

import (
	"sync"
	"testing"
)

func TestAppend_Bounded(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		appends  int
		wantLen  int
		wantHead int
	}{
		{"empty", 100, 0, 0, -1},
		{"under capacity keeps all", 100, 42, 42, 0},
		{"at capacity keeps all", 100, 100, 100, 0},
		{"one over evicts one", 100, 101, 100, 1},
		{"far over keeps last", 100, 250, 100, 150},
		{"zero capacity uses default", 0, 150, DefaultCapacity, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New[int](tt.capacity)
			for i := 0; i < tt.appends; i++ {
				h.Append(i)
				if h.Len() > h.Cap() {
					t.Fatalf("len %d exceeds cap %d after %d appends", h.Len(), h.Cap(), i+1)
				}
			}
			if h.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", h.Len(), tt.wantLen)
			}
			snap := h.Snapshot()
			if tt.wantHead >= 0 && snap[0].Value != tt.wantHead {
				t.Errorf("head = %d, want %d", snap[0].Value, tt.wantHead)
			}
		})
	}
}

func TestSnapshot_KeepsLastInOrder(t *testing.T) {
	h := New[int](100)
	const n = 137
	for i := 0; i < n; i++ {
		h.Append(i)
	}

	snap := h.Snapshot()
	if len(snap) != 100 {
		t.Fatalf("len = %d, want 100", len(snap))
	}
	for i, e := range snap {
		if e.Index != i {
			t.Errorf("entry %d has index %d", i, e.Index)
		}
		if want := n - 100 + i; e.Value != want {
			t.Errorf("entry %d = %d, want %d", i, e.Value, want)
		}
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	h := New[float64](3)
	h.Append(1)
	h.Append(2)

	snap := h.Snapshot()
	snap[0].Value = 99

	vals := h.Values()
	if vals[0] != 1 {
		t.Errorf("history mutated through snapshot: %v", vals)
	}
}

func TestTupleSamples(t *testing.T) {
	type pair struct{ a, b float64 }
	h := New[pair](2)
	h.Append(pair{1, 2})
	h.Append(pair{3, 4})
	h.Append(pair{5, 6})

	got := h.Values()
	want := []pair{{3, 4}, {5, 6}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestConcurrentReadersSeeWholeAppends(t *testing.T) {
	h := New[int](10)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			h.Append(i)
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				snap := h.Snapshot()
				if len(snap) > 10 {
					t.Errorf("snapshot len %d over capacity", len(snap))
					return
				}
				for j := 1; j < len(snap); j++ {
					if snap[j].Value != snap[j-1].Value+1 {
						t.Errorf("non-contiguous snapshot: %v", snap)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
