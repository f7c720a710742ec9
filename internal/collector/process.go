// Process table enumeration.
// Uses gopsutil for cross-platform process listing.
package collector

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/Guliveer/vitalis/deck/internal/models"
)

// SkipReason explains why a process was left out of an enumeration.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipGone
	SkipDenied
	SkipZombie
	SkipOther
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipGone:
		return "gone"
	case SkipDenied:
		return "denied"
	case SkipZombie:
		return "zombie"
	default:
		return "other"
	}
}

// ProcessResult is one enumerated process: either Info is valid and Skip is
// SkipNone, or Skip says why the entry must be dropped.
type ProcessResult struct {
	Info models.ProcessInfo
	Skip SkipReason
	Err  error
}

// OK reports whether the result carries a usable ProcessInfo.
func (r ProcessResult) OK() bool { return r.Skip == SkipNone }

// normalizedStatuses maps raw gopsutil status strings to a consistent set of
// display values used across all platforms.
var normalizedStatuses = map[string]string{
	"running":               "running",
	"sleeping":              "sleeping",
	"sleep":                 "sleeping",
	"idle":                  "idle",
	"stopped":               "stopped",
	"stop":                  "stopped",
	"zombie":                "zombie",
	"dead":                  "zombie",
	"wait":                  "sleeping",
	"lock":                  "sleeping",
	"disk-sleep":            "sleeping",
	"tracing-stop":          "stopped",
	"wake-kill":             "sleeping",
	"waking":                "running",
	"parked":                "idle",
	"idle-interrupt":        "idle",
	"suspended":             "stopped",
	"uninterruptible-sleep": "sleeping",
}

// normalizeStatus maps a raw status to a display value. An empty status
// (common on Windows) is inferred from CPU activity.
func normalizeStatus(raw string, cpuPct float64) string {
	if raw != "" {
		key := strings.ToLower(strings.TrimSpace(raw))
		if mapped, ok := normalizedStatuses[key]; ok {
			return mapped
		}
		return key
	}
	if cpuPct > 0 {
		return "running"
	}
	return "idle"
}

// classify maps a per-process error to a skip reason.
func classify(err error) SkipReason {
	switch {
	case errors.Is(err, process.ErrorProcessNotRunning), errors.Is(err, os.ErrNotExist):
		return SkipGone
	case errors.Is(err, process.ErrorNotPermitted), errors.Is(err, os.ErrPermission):
		return SkipDenied
	default:
		return SkipOther
	}
}

// trackedProcess keeps a gopsutil handle alive between enumerations so that
// Percent can measure CPU usage since the previous cycle.
type trackedProcess struct {
	proc    *process.Process
	created int64
}

// Processes enumerates every live process. Entries that vanish, deny access
// or turn out to be zombies are returned with a skip reason.
func (h *Host) Processes(ctx context.Context) ([]ProcessResult, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	live := make(map[int32]trackedProcess, len(pids))
	results := make([]ProcessResult, 0, len(pids))
	for _, pid := range pids {
		tp, err := h.track(ctx, pid)
		if err != nil {
			results = append(results, ProcessResult{Info: models.ProcessInfo{PID: pid}, Skip: classify(err), Err: err})
			continue
		}
		live[pid] = tp
		results = append(results, readProcess(ctx, tp.proc))
	}
	h.procs = live

	return results, nil
}

// track returns the cached handle for pid, replacing it when the PID has
// been reused by a different process.
func (h *Host) track(ctx context.Context, pid int32) (trackedProcess, error) {
	if tp, ok := h.procs[pid]; ok {
		created, err := tp.proc.CreateTimeWithContext(ctx)
		if err == nil && created == tp.created {
			return tp, nil
		}
	}
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return trackedProcess{}, err
	}
	created, _ := p.CreateTimeWithContext(ctx)
	return trackedProcess{proc: p, created: created}, nil
}

func readProcess(ctx context.Context, p *process.Process) ProcessResult {
	skip := func(err error) ProcessResult {
		return ProcessResult{Info: models.ProcessInfo{PID: p.Pid}, Skip: classify(err), Err: err}
	}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return skip(err)
	}
	statuses, err := p.StatusWithContext(ctx)
	if err != nil {
		return skip(err)
	}
	cpuPct, err := p.PercentWithContext(ctx, 0)
	if err != nil {
		return skip(err)
	}
	memPct, err := p.MemoryPercentWithContext(ctx)
	if err != nil {
		return skip(err)
	}
	memInfo, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return skip(err)
	}
	// Usernames fail for UIDs without a passwd entry; keep the process.
	user, _ := p.UsernameWithContext(ctx)

	rawStatus := ""
	if len(statuses) > 0 {
		rawStatus = statuses[0]
	}
	status := normalizeStatus(rawStatus, cpuPct)
	if status == "zombie" {
		return ProcessResult{Info: models.ProcessInfo{PID: p.Pid, Name: name}, Skip: SkipZombie}
	}

	return ProcessResult{
		Info: models.ProcessInfo{
			PID:    p.Pid,
			Name:   name,
			Status: status,
			CPU:    cpuPct,
			Memory: float64(memPct),
			RSS:    memInfo.RSS,
			User:   user,
		},
	}
}
