// CPU readings: utilization, core counts and frequency.
// Uses gopsutil for cross-platform CPU metrics.
package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
)

// CPUPercent returns overall CPU usage since the previous call.
// An interval of zero makes gopsutil compare against its last sample instead
// of sleeping, so the sampling cycle never stalls here.
func (h *Host) CPUPercent(ctx context.Context) (float64, error) {
	overall, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(overall) == 0 {
		return 0, fmt.Errorf("cpu percent: %w", ErrUnavailable)
	}
	return overall[0], nil
}

// CPUCounts returns logical and physical core counts.
func (h *Host) CPUCounts(ctx context.Context) (int, int, error) {
	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, 0, err
	}
	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		// Some virtualised hosts hide the topology.
		physical = logical
	}
	return logical, physical, nil
}

// CPUFrequency returns the frequency of the first CPU in MHz.
func (h *Host) CPUFrequency(ctx context.Context) (float64, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("cpu info: %w", err)
	}
	if len(infos) == 0 || infos[0].Mhz <= 0 {
		return 0, ErrUnavailable
	}
	return infos[0].Mhz, nil
}
