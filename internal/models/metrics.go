// Package models defines the metric data structures shared by the sampler and
// the presentation layer. A Snapshot is rebuilt on every sampling cycle.
package models

import (
	"time"

	"github.com/Guliveer/vitalis/deck/internal/history"
)

// Snapshot is the consolidated view of one sampling cycle.
// A nil section means the corresponding step failed this cycle.
type Snapshot struct {
	Cycle     uint64          `json:"cycle"`
	Timestamp time.Time       `json:"timestamp"`
	CPU       *CPUStats       `json:"cpu"`
	Memory    *MemoryStats    `json:"memory"`
	Disk      *DiskStats      `json:"disk"`
	Network   *NetworkStats   `json:"network"`
	Processes []ProcessInfo   `json:"processes"`
	Host      *HostStats      `json:"host"`
	History   HistorySnapshot `json:"history"`
}

// CPUStats holds instantaneous CPU readings.
type CPUStats struct {
	Percent      float64  `json:"percent"`
	Logical      int      `json:"logical"`
	Physical     int      `json:"physical"`
	FrequencyMHz *float64 `json:"frequency_mhz"`
}

// MemoryStats holds virtual memory usage in bytes.
type MemoryStats struct {
	Percent   float64 `json:"percent"`
	Used      uint64  `json:"used"`
	Available uint64  `json:"available"`
	Total     uint64  `json:"total"`
}

// DiskStats holds usage of the configured mount and the I/O throughput
// derived from the cumulative counters. Rate is nil until a baseline exists.
type DiskStats struct {
	Path    string    `json:"path"`
	Percent float64   `json:"percent"`
	Used    uint64    `json:"used"`
	Free    uint64    `json:"free"`
	Total   uint64    `json:"total"`
	Rate    *DiskRate `json:"rate"`
}

// NetworkStats holds throughput and the active connection count.
// Connections is nil when the count could not be read.
type NetworkStats struct {
	Rate        *NetRate `json:"rate"`
	Connections *int     `json:"connections"`
}

// NetRate is an (outbound, inbound) pair in KB/s.
type NetRate struct {
	Sent float64 `json:"sent"`
	Recv float64 `json:"recv"`
}

// DiskRate is a (read, write) pair in KB/s.
type DiskRate struct {
	Read  float64 `json:"read"`
	Write float64 `json:"write"`
}

// ProcessInfo represents a single process's resource usage.
type ProcessInfo struct {
	PID    int32   `json:"pid"`
	Name   string  `json:"name"`
	Status string  `json:"status"`
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
	RSS    uint64  `json:"rss"`
	User   string  `json:"user"`
}

// HostStats carries the status-line values.
type HostStats struct {
	Platform string        `json:"platform"`
	BootTime time.Time     `json:"boot_time"`
	Uptime   time.Duration `json:"uptime"`
}

// HistorySnapshot is a positional copy of every rolling history.
type HistorySnapshot struct {
	CPU     []history.Entry[float64]  `json:"cpu"`
	Memory  []history.Entry[float64]  `json:"memory"`
	Disk    []history.Entry[DiskRate] `json:"disk"`
	Network []history.Entry[NetRate]  `json:"network"`
}
