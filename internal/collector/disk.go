// Disk readings: usage of one mount and cumulative I/O counters.
// Uses gopsutil for cross-platform disk metrics.
package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/Guliveer/vitalis/deck/internal/models"
)

// virtualDevicePrefixes are block devices whose traffic never reaches
// physical storage.
var virtualDevicePrefixes = []string{"loop", "ram", "zram", "dm-", "md"}

// DiskUsage returns usage for the filesystem mounted at path.
func (h *Host) DiskUsage(ctx context.Context, path string) (models.DiskStats, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return models.DiskStats{}, fmt.Errorf("disk usage %s: %w", path, err)
	}
	return models.DiskStats{
		Path:    path,
		Percent: usage.UsedPercent,
		Used:    usage.Used,
		Free:    usage.Free,
		Total:   usage.Total,
	}, nil
}

// DiskIOCounters sums read and write bytes over whole physical disks.
// Partitions are skipped so their traffic is not counted twice.
func (h *Host) DiskIOCounters(ctx context.Context) (DiskIO, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return DiskIO{}, fmt.Errorf("disk io counters: %w", err)
	}

	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}

	var total DiskIO
	var counted int
	for name, st := range counters {
		if isVirtualDevice(name) || isPartition(name, names) {
			continue
		}
		total.ReadBytes += st.ReadBytes
		total.WriteBytes += st.WriteBytes
		counted++
	}
	if counted == 0 {
		return DiskIO{}, ErrUnavailable
	}
	return total, nil
}

func isVirtualDevice(name string) bool {
	for _, prefix := range virtualDevicePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// isPartition reports whether name is a partition of another device in
// names: sda1 of sda, nvme0n1p2 of nvme0n1, mmcblk0p1 of mmcblk0.
func isPartition(name string, names []string) bool {
	for _, parent := range names {
		if parent == name || !strings.HasPrefix(name, parent) {
			continue
		}
		suffix := strings.TrimPrefix(strings.TrimPrefix(name, parent), "p")
		if suffix != "" && isDigits(suffix) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
