// Host identity readings: boot time and platform name.
// Uses gopsutil host for cross-platform information.
package collector

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"
)

// Host is the gopsutil-backed Source.
type Host struct {
	logger *zap.Logger

	mu    sync.Mutex
	procs map[int32]trackedProcess

	platformOnce sync.Once
	platform     string
}

var _ Source = (*Host)(nil)

// NewHost creates a Source reading from the local machine.
func NewHost(logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		logger: logger.Named("collector"),
		procs:  make(map[int32]trackedProcess),
	}
}

// BootTime returns the time the host was booted.
func (h *Host) BootTime(ctx context.Context) (time.Time, error) {
	bootTime, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("boot time: %w", err)
	}
	return time.Unix(int64(bootTime), 0), nil
}

// Platform returns e.g. "ubuntu 22.04" or "darwin 14.2.1". The value is
// read once and cached; when host info cannot be read it falls back to
// runtime.GOOS.
func (h *Host) Platform(ctx context.Context) (string, error) {
	h.platformOnce.Do(func() {
		info, err := host.InfoWithContext(ctx)
		if err != nil {
			h.logger.Debug("Host info unavailable, using runtime values", zap.Error(err))
			h.platform = runtime.GOOS
			return
		}
		h.platform = formatPlatform(info.Platform, info.PlatformVersion, info.KernelVersion)
	})
	return h.platform, nil
}

func formatPlatform(name, version, kernel string) string {
	if name == "" {
		name = runtime.GOOS
	}
	if version == "" {
		version = kernel
	}
	return strings.TrimSpace(name + " " + version)
}
