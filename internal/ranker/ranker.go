// Package ranker orders enumerated processes by CPU usage and keeps the
// busiest ones.
package ranker

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/deck/internal/collector"
	"github.com/Guliveer/vitalis/deck/internal/models"
)

// DefaultLimit is the number of processes kept when no limit is configured.
const DefaultLimit = 50

// Top drops every skipped result, sorts the rest by CPU usage descending and
// returns at most n of them. Ties keep their enumeration order.
func Top(results []collector.ProcessResult, n int) []models.ProcessInfo {
	if n <= 0 {
		n = DefaultLimit
	}

	infos := make([]models.ProcessInfo, 0, len(results))
	for _, r := range results {
		if r.OK() {
			infos = append(infos, r.Info)
		}
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].CPU > infos[j].CPU
	})

	if len(infos) > n {
		infos = infos[:n]
	}
	return infos
}

// Ranker enumerates processes from a Source and ranks them.
type Ranker struct {
	src    collector.Source
	limit  int
	logger *zap.Logger
}

// New creates a Ranker keeping the top limit processes.
func New(src collector.Source, limit int, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Ranker{src: src, limit: limit, logger: logger.Named("ranker")}
}

// Rank returns the current top processes by CPU usage.
func (r *Ranker) Rank(ctx context.Context) ([]models.ProcessInfo, error) {
	results, err := r.src.Processes(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating processes: %w", err)
	}

	skipped := make(map[collector.SkipReason]int)
	for _, res := range results {
		if !res.OK() {
			skipped[res.Skip]++
		}
	}
	if len(skipped) > 0 {
		r.logger.Debug("Skipped processes",
			zap.Int("gone", skipped[collector.SkipGone]),
			zap.Int("denied", skipped[collector.SkipDenied]),
			zap.Int("zombie", skipped[collector.SkipZombie]),
			zap.Int("other", skipped[collector.SkipOther]))
	}

	return Top(results, r.limit), nil
}
