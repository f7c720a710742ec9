package ranker

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Guliveer/vitalis/deck/internal/collector"
	"github.com/Guliveer/vitalis/deck/internal/models"
)

func ok(pid int32, name string, cpu float64) collector.ProcessResult {
	return collector.ProcessResult{Info: models.ProcessInfo{PID: pid, Name: name, CPU: cpu}}
}

func TestTop_SortsDescendingAndStable(t *testing.T) {
	results := []collector.ProcessResult{
		ok(1, "a", 5),
		ok(2, "b", 90),
		ok(3, "c", 90),
		ok(4, "d", 1),
	}

	got := Top(results, 10)

	wantPIDs := []int32{2, 3, 1, 4}
	if len(got) != len(wantPIDs) {
		t.Fatalf("len = %d, want %d", len(got), len(wantPIDs))
	}
	for i, pid := range wantPIDs {
		if got[i].PID != pid {
			t.Errorf("got[%d].PID = %d, want %d", i, got[i].PID, pid)
		}
	}
}

func TestTop_DropsSkipped(t *testing.T) {
	results := []collector.ProcessResult{
		ok(1, "a", 5),
		{Info: models.ProcessInfo{PID: 2}, Skip: collector.SkipDenied},
		{Info: models.ProcessInfo{PID: 3}, Skip: collector.SkipGone},
		{Info: models.ProcessInfo{PID: 4, Name: "z"}, Skip: collector.SkipZombie},
	}

	got := Top(results, 10)
	if len(got) != 1 || got[0].PID != 1 {
		t.Errorf("Top() = %+v, want only pid 1", got)
	}
}

func TestTop_Limit(t *testing.T) {
	results := make([]collector.ProcessResult, 0, 120)
	for i := 0; i < 120; i++ {
		results = append(results, ok(int32(i), "p", float64(i%7)))
	}

	tests := []struct {
		n    int
		want int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{10, 10},
		{500, 120},
	}
	for _, tt := range tests {
		if got := Top(results, tt.n); len(got) != tt.want {
			t.Errorf("Top(n=%d) len = %d, want %d", tt.n, len(got), tt.want)
		}
	}
}

type procSource struct {
	collector.Source
	results []collector.ProcessResult
	err     error
}

func (p procSource) Processes(context.Context) ([]collector.ProcessResult, error) {
	return p.results, p.err
}

func TestRanker_Rank(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	src := procSource{results: []collector.ProcessResult{
		ok(1, "a", 1),
		ok(2, "b", 2),
		{Info: models.ProcessInfo{PID: 3}, Skip: collector.SkipDenied},
	}}

	r := New(src, 1, zap.New(core))
	got, err := r.Rank(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].PID != 2 {
		t.Errorf("Rank() = %+v, want pid 2 only", got)
	}

	entries := logs.FilterMessage("Skipped processes").All()
	if len(entries) != 1 {
		t.Fatalf("expected one skip log, got %d", len(entries))
	}
	if denied := entries[0].ContextMap()["denied"]; denied != int64(1) {
		t.Errorf("denied = %v, want 1", denied)
	}
}

func TestRanker_RankError(t *testing.T) {
	boom := errors.New("boom")
	r := New(procSource{err: boom}, 5, nil)
	if _, err := r.Rank(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Rank() error = %v, want wrapped boom", err)
	}
}
