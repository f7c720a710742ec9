package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/deck/internal/collector"
	"github.com/Guliveer/vitalis/deck/internal/models"
	"github.com/Guliveer/vitalis/deck/internal/rate"
)

// step is one stage of a sampling cycle. It writes its section into snap and
// returns an error when the section could not be produced.
type step struct {
	name string
	run  func(ctx context.Context, snap *models.Snapshot) error
}

// steps returns the cycle pipeline. Later steps read what earlier ones wrote,
// so the order is fixed.
func (s *Sampler) steps() []step {
	return []step{
		{"cpu", s.sampleCPU},
		{"memory", s.sampleMemory},
		{"disk", s.sampleDisk},
		{"network", s.sampleNetwork},
		{"history", s.recordHistory},
		{"processes", s.sampleProcesses},
		{"host", s.sampleHost},
	}
}

// runStep executes st, converting a returned error or a panic into a log
// entry. The cycle always continues with the next step.
func (s *Sampler) runStep(ctx context.Context, st step, snap *models.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Sampler step panicked",
				zap.String("step", st.name),
				zap.Uint64("cycle", snap.Cycle),
				zap.Any("panic", r))
		}
	}()

	if err := st.run(ctx, snap); err != nil {
		s.logger.Warn("Sampler step failed",
			zap.String("step", st.name),
			zap.Uint64("cycle", snap.Cycle),
			zap.Error(err))
	}
}

func (s *Sampler) sampleCPU(ctx context.Context, snap *models.Snapshot) error {
	percent, err := s.src.CPUPercent(ctx)
	if err != nil {
		return fmt.Errorf("cpu percent: %w", err)
	}
	stats := &models.CPUStats{Percent: percent}

	if logical, physical, err := s.src.CPUCounts(ctx); err == nil {
		stats.Logical, stats.Physical = logical, physical
	} else {
		s.logger.Debug("CPU counts unavailable", zap.Error(err))
	}

	if mhz, err := s.src.CPUFrequency(ctx); err == nil {
		stats.FrequencyMHz = &mhz
	} else if !errors.Is(err, collector.ErrUnavailable) {
		s.logger.Debug("CPU frequency unavailable", zap.Error(err))
	}

	snap.CPU = stats
	return nil
}

func (s *Sampler) sampleMemory(ctx context.Context, snap *models.Snapshot) error {
	mem, err := s.src.VirtualMemory(ctx)
	if err != nil {
		return fmt.Errorf("virtual memory: %w", err)
	}
	snap.Memory = &mem
	return nil
}

// sampleDisk reads I/O counters even when the configured path has no
// usage, so the throughput history keeps going. The usage error is still
// reported once the rates are recorded.
func (s *Sampler) sampleDisk(ctx context.Context, snap *models.Snapshot) error {
	usage, usageErr := s.src.DiskUsage(ctx, s.diskPath)
	if usageErr == nil {
		snap.Disk = &usage
	}

	io, err := s.src.DiskIOCounters(ctx)
	switch {
	case errors.Is(err, collector.ErrUnavailable):
		return usageErr
	case err != nil:
		return errors.Join(usageErr, fmt.Errorf("disk io: %w", err))
	}

	at := s.now()
	read, readOK := s.state.Rates.Observe(rate.DiskRead, rate.Reading{Value: io.ReadBytes, At: at})
	write, writeOK := s.state.Rates.Observe(rate.DiskWrite, rate.Reading{Value: io.WriteBytes, At: at})
	if readOK && writeOK {
		r := models.DiskRate{Read: read, Write: write}
		if snap.Disk != nil {
			snap.Disk.Rate = &r
		}
		s.state.Disk.Append(r)
	}
	return usageErr
}

func (s *Sampler) sampleNetwork(ctx context.Context, snap *models.Snapshot) error {
	io, err := s.src.NetIOCounters(ctx)
	if err != nil {
		return fmt.Errorf("net io: %w", err)
	}
	stats := &models.NetworkStats{}
	snap.Network = stats

	at := s.now()
	sent, sentOK := s.state.Rates.Observe(rate.NetSent, rate.Reading{Value: io.BytesSent, At: at})
	recv, recvOK := s.state.Rates.Observe(rate.NetRecv, rate.Reading{Value: io.BytesRecv, At: at})
	if sentOK && recvOK {
		r := models.NetRate{Sent: sent, Recv: recv}
		stats.Rate = &r
		s.state.Network.Append(r)
	}

	if n, err := s.src.NetConnectionCount(ctx); err == nil {
		stats.Connections = &n
	} else {
		s.logger.Debug("Connection count unavailable", zap.Error(err))
	}
	return nil
}

// recordHistory appends the instantaneous CPU and memory readings. A section
// missing this cycle contributes nothing.
func (s *Sampler) recordHistory(_ context.Context, snap *models.Snapshot) error {
	if snap.CPU != nil {
		s.state.CPU.Append(snap.CPU.Percent)
	}
	if snap.Memory != nil {
		s.state.Memory.Append(snap.Memory.Percent)
	}
	return nil
}

func (s *Sampler) sampleProcesses(ctx context.Context, snap *models.Snapshot) error {
	procs, err := s.ranker.Rank(ctx)
	if err != nil {
		return err
	}
	snap.Processes = procs
	return nil
}

func (s *Sampler) sampleHost(ctx context.Context, snap *models.Snapshot) error {
	platform, err := s.src.Platform(ctx)
	if err != nil {
		s.logger.Debug("Platform unavailable", zap.Error(err))
	}
	boot, err := s.src.BootTime(ctx)
	if err != nil {
		snap.Host = &models.HostStats{Platform: platform}
		return fmt.Errorf("boot time: %w", err)
	}
	snap.Host = &models.HostStats{
		Platform: platform,
		BootTime: boot,
		Uptime:   snap.Timestamp.Sub(boot).Truncate(time.Second),
	}
	return nil
}
