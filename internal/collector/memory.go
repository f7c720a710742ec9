// RAM usage reading.
// Uses gopsutil for cross-platform memory metrics.
package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Guliveer/vitalis/deck/internal/models"
)

// VirtualMemory returns percent used plus used, available and total bytes.
func (h *Host) VirtualMemory(ctx context.Context) (models.MemoryStats, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return models.MemoryStats{}, err
	}
	return models.MemoryStats{
		Percent:   v.UsedPercent,
		Used:      v.Used,
		Available: v.Available,
		Total:     v.Total,
	}, nil
}
