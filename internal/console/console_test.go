package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Guliveer/vitalis/deck/internal/config"
	"github.com/Guliveer/vitalis/deck/internal/models"
	"github.com/Guliveer/vitalis/deck/internal/session"
)

// syncBuffer is a bytes.Buffer safe for the relay goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRun_RelaysPrefixedOutput(t *testing.T) {
	logger := zaptest.NewLogger(t)
	mgr := session.NewManager(config.DefaultConfig().Shell, logger)
	out := &syncBuffer{}
	c := New(mgr, out, "KB/s", logger)

	in := strings.NewReader("echo one\n\n   \necho two\n")
	if err := c.Run(context.Background(), in); err != nil {
		t.Fatalf("Run: %v", err)
	}

	sessions := mgr.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2 (blank lines ignored)", len(sessions))
	}

	got := out.String()
	for i, word := range []string{"one", "two"} {
		prefix := "[" + sessions[i].ShortID() + "] "
		for _, want := range []string{
			prefix + "$ echo " + word,
			prefix + word,
			prefix + "[Command completed with exit code 0]",
		} {
			if !strings.Contains(got, want+"\n") {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	mgr := session.NewManager(config.DefaultConfig().Shell, nil)
	c := New(mgr, io.Discard, "KB/s", nil)

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx, pr) }()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestOnSnapshot_ThrottlesInfoSummary(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(nil, io.Discard, "KB/s", zap.New(core))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{0, time.Second, 11 * time.Second} {
		c.OnSnapshot(models.Snapshot{
			Cycle:     uint64(i + 1),
			Timestamp: base.Add(offset),
			CPU:       &models.CPUStats{Percent: 5},
		})
	}

	if n := logs.FilterMessage("Snapshot").Len(); n != 3 {
		t.Errorf("debug snapshots = %d, want 3", n)
	}
	info := logs.FilterMessage("Telemetry").All()
	if len(info) != 2 {
		t.Fatalf("info summaries = %d, want 2", len(info))
	}
	if cpu := info[0].ContextMap()["cpu_percent"]; cpu != 5.0 {
		t.Errorf("cpu_percent = %v, want 5", cpu)
	}
}

func TestWriteSummary(t *testing.T) {
	mhz := 3000.0
	snap := models.Snapshot{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		CPU:       &models.CPUStats{Percent: 25, Logical: 4, Physical: 2, FrequencyMHz: &mhz},
		Network:   &models.NetworkStats{Rate: &models.NetRate{Sent: 1, Recv: 2}},
		Processes: []models.ProcessInfo{{PID: 9, Name: "worker", Status: "running", CPU: 50}},
		Host:      &models.HostStats{Platform: "testos"},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, snap, "KB/s"); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"Metric", "25.0% (4 logical, 2 physical) @ 3000 MHz",
		"sent 1.0 KB/s, recv 2.0 KB/s", "testos", "worker (pid 9, running)", "user N/A",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}

	rows := summaryRows(snap, "KB/s")
	find := func(name string) string {
		for _, r := range rows {
			if r[0] == name {
				return r[1]
			}
		}
		return ""
	}
	for _, name := range []string{"Memory", "Disk", "Disk I/O", "Connections", "Uptime"} {
		if v := find(name); v != notAvailable {
			t.Errorf("%s = %q, want N/A", name, v)
		}
	}
}
