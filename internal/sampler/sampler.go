// Package sampler implements the tick-based telemetry loop. Each cycle pulls
// readings from a collector.Source, derives rates, appends to the rolling
// histories and hands a consolidated Snapshot to the registered callbacks.
// The sampler does NOT render anything itself.
package sampler

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/deck/internal/collector"
	"github.com/Guliveer/vitalis/deck/internal/config"
	"github.com/Guliveer/vitalis/deck/internal/models"
	"github.com/Guliveer/vitalis/deck/internal/ranker"
)

// cycleTimeout bounds a single cycle so a stuck reading cannot stall the loop.
const cycleTimeout = 10 * time.Second

// Sampler drives periodic collection.
type Sampler struct {
	src      collector.Source
	ranker   *ranker.Ranker
	state    *State
	interval time.Duration
	diskPath string
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	cycle  uint64
	onSnap []func(models.Snapshot)
}

// New creates a Sampler reading from src with the collection settings in cfg.
func New(src collector.Source, cfg *config.Config, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := cfg.Collection
	return &Sampler{
		src:      src,
		ranker:   ranker.New(src, c.TopProcesses, logger),
		state:    NewState(c.HistorySize, c.RateUnit),
		interval: c.Interval.Duration,
		diskPath: c.DiskPath,
		logger:   logger.Named("sampler"),
		now:      time.Now,
	}
}

// State exposes the histories and counter baselines.
func (s *Sampler) State() *State { return s.state }

// OnSnapshot registers a callback invoked with every assembled snapshot.
// Callbacks run on the sampling goroutine and must not block.
func (s *Sampler) OnSnapshot(fn func(models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSnap = append(s.onSnap, fn)
}

// Run performs one cycle immediately and then one per interval until ctx is
// cancelled. Cycles never overlap.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Sampler stopped", zap.Uint64("cycles", s.cycles()))
			return
		case <-ticker.C:
			s.Cycle(ctx)
		}
	}
}

// Cycle runs every step once, pushes the resulting snapshot to the
// registered callbacks and returns it.
func (s *Sampler) Cycle(ctx context.Context) models.Snapshot {
	cycleCtx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	s.mu.Lock()
	s.cycle++
	snap := models.Snapshot{Cycle: s.cycle, Timestamp: s.now()}
	callbacks := slices.Clone(s.onSnap)
	s.mu.Unlock()

	for _, st := range s.steps() {
		s.runStep(cycleCtx, st, &snap)
	}
	snap.History = s.state.Histories()

	s.logger.Debug("Sampled", zap.Uint64("cycle", snap.Cycle), zap.Int("processes", len(snap.Processes)))

	for _, fn := range callbacks {
		fn(snap)
	}
	return snap
}

func (s *Sampler) cycles() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle
}
