package sampler

import (
	"github.com/Guliveer/vitalis/deck/internal/history"
	"github.com/Guliveer/vitalis/deck/internal/models"
	"github.com/Guliveer/vitalis/deck/internal/rate"
)

// State is everything that survives from one cycle to the next: the rolling
// histories and the counter baselines. The sampler is its only writer; each
// member guards itself so readers may take snapshots concurrently.
type State struct {
	CPU     *history.History[float64]
	Memory  *history.History[float64]
	Disk    *history.History[models.DiskRate]
	Network *history.History[models.NetRate]
	Rates   *rate.Tracker
}

// NewState creates empty histories of the given capacity and a rate tracker
// reporting in units of divisor bytes per second.
func NewState(capacity int, divisor float64) *State {
	return &State{
		CPU:     history.New[float64](capacity),
		Memory:  history.New[float64](capacity),
		Disk:    history.New[models.DiskRate](capacity),
		Network: history.New[models.NetRate](capacity),
		Rates:   rate.NewTracker(divisor),
	}
}

// Histories returns a positional copy of every history.
func (s *State) Histories() models.HistorySnapshot {
	return models.HistorySnapshot{
		CPU:     s.CPU.Snapshot(),
		Memory:  s.Memory.Snapshot(),
		Disk:    s.Disk.Snapshot(),
		Network: s.Network.Snapshot(),
	}
}
