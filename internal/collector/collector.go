// Package collector defines the Source capability the sampler pulls host
// readings from, and Host, its gopsutil-backed implementation.
package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Guliveer/vitalis/deck/internal/models"
)

var (
	// ErrUnavailable marks an optional reading the host cannot provide.
	ErrUnavailable = errors.New("reading unavailable")

	// ErrNoMetrics is returned by Verify when the source cannot produce even
	// the basic CPU and memory readings.
	ErrNoMetrics = errors.New("no usable metrics source")
)

// Source supplies point-in-time host readings. Every call must return
// promptly; blocking interval samples are not allowed.
type Source interface {
	// CPUPercent returns overall utilization since the previous call.
	CPUPercent(ctx context.Context) (float64, error)

	// CPUCounts returns the logical and physical core counts.
	CPUCounts(ctx context.Context) (logical, physical int, err error)

	// CPUFrequency returns the current frequency in MHz or ErrUnavailable.
	CPUFrequency(ctx context.Context) (float64, error)

	VirtualMemory(ctx context.Context) (models.MemoryStats, error)

	// DiskUsage returns usage for the filesystem mounted at path.
	// The returned stats carry no rate.
	DiskUsage(ctx context.Context, path string) (models.DiskStats, error)

	// DiskIOCounters returns cumulative bytes read and written across
	// physical disks, or ErrUnavailable.
	DiskIOCounters(ctx context.Context) (DiskIO, error)

	// NetIOCounters returns cumulative bytes sent and received across all
	// interfaces.
	NetIOCounters(ctx context.Context) (NetIO, error)

	// NetConnectionCount returns the number of inet sockets. Hosts commonly
	// deny this to unprivileged users.
	NetConnectionCount(ctx context.Context) (int, error)

	// Processes enumerates the process table. Per-process failures are
	// reported in the results rather than as an error.
	Processes(ctx context.Context) ([]ProcessResult, error)

	BootTime(ctx context.Context) (time.Time, error)

	// Platform returns a human-readable OS name and version.
	Platform(ctx context.Context) (string, error)
}

// DiskIO holds cumulative disk counters.
type DiskIO struct {
	ReadBytes  uint64
	WriteBytes uint64
}

// NetIO holds cumulative network counters.
type NetIO struct {
	BytesSent uint64
	BytesRecv uint64
}

// Verify performs a start-up probe of src. It fails only when neither CPU
// nor memory can be read, since every other reading degrades per cycle.
func Verify(ctx context.Context, src Source) error {
	_, cpuErr := src.CPUPercent(ctx)
	_, memErr := src.VirtualMemory(ctx)
	if cpuErr != nil && memErr != nil {
		return fmt.Errorf("%w: cpu: %v; memory: %v", ErrNoMetrics, cpuErr, memErr)
	}
	return nil
}
