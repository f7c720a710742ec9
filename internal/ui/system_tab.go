package ui

import (
	"fmt"
	"strings"

	"github.com/Guliveer/vitalis/deck/internal/history"
	"github.com/Guliveer/vitalis/deck/internal/models"
)

func values[T any](entries []history.Entry[T], pick func(T) float64) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = pick(e.Value)
	}
	return out
}

func identity(v float64) float64 { return v }

func (m Model) renderSystem() string {
	s := m.snap
	if s == nil {
		return styleMuted.Render("Waiting for the first sample...")
	}

	sparkWidth := max(m.width-styleLabel.GetWidth()-4, 10)
	var rows []string
	row := func(label, body string) {
		rows = append(rows, styleLabel.Render(label)+body)
	}

	if s.CPU != nil {
		freq := notAvailable
		if s.CPU.FrequencyMHz != nil {
			freq = fmt.Sprintf("%.0f MHz", *s.CPU.FrequencyMHz)
		}
		row("CPU", fmt.Sprintf("%s %5.1f%%  %d logical / %d physical  %s",
			m.cpuBar.ViewAs(s.CPU.Percent/100), s.CPU.Percent, s.CPU.Logical, s.CPU.Physical, freq))
	} else {
		row("CPU", notAvailable)
	}
	row("", sparkline(values(s.History.CPU, identity), sparkWidth, 0, 100))

	if s.Memory != nil {
		row("Memory", fmt.Sprintf("%s %5.1f%%  %s used / %s total, %s available",
			m.memBar.ViewAs(s.Memory.Percent/100), s.Memory.Percent,
			formatBytes(s.Memory.Used), formatBytes(s.Memory.Total), formatBytes(s.Memory.Available)))
	} else {
		row("Memory", notAvailable)
	}
	row("", sparkline(values(s.History.Memory, identity), sparkWidth, 0, 100))

	if s.Disk != nil {
		row("Disk", fmt.Sprintf("%s %5.1f%%  %s  %s used / %s free / %s total",
			m.diskBar.ViewAs(s.Disk.Percent/100), s.Disk.Percent, s.Disk.Path,
			formatBytes(s.Disk.Used), formatBytes(s.Disk.Free), formatBytes(s.Disk.Total)))
		io := notAvailable
		if s.Disk.Rate != nil {
			io = fmt.Sprintf("read %.1f %s  write %.1f %s", s.Disk.Rate.Read, m.rateLabel, s.Disk.Rate.Write, m.rateLabel)
		}
		row("Disk I/O", io)
	} else {
		row("Disk", notAvailable)
	}
	row("  read", sparkline(values(s.History.Disk, func(r models.DiskRate) float64 { return r.Read }), sparkWidth, 0, 0))
	row("  write", sparkline(values(s.History.Disk, func(r models.DiskRate) float64 { return r.Write }), sparkWidth, 0, 0))

	if s.Network != nil {
		rate := notAvailable
		if s.Network.Rate != nil {
			rate = fmt.Sprintf("sent %.1f %s  recv %.1f %s", s.Network.Rate.Sent, m.rateLabel, s.Network.Rate.Recv, m.rateLabel)
		}
		conns := notAvailable
		if s.Network.Connections != nil {
			conns = fmt.Sprint(*s.Network.Connections)
		}
		row("Network", fmt.Sprintf("%s  connections %s", rate, conns))
	} else {
		row("Network", notAvailable)
	}
	row("  sent", sparkline(values(s.History.Network, func(r models.NetRate) float64 { return r.Sent }), sparkWidth, 0, 0))
	row("  recv", sparkline(values(s.History.Network, func(r models.NetRate) float64 { return r.Recv }), sparkWidth, 0, 0))

	return strings.Join(rows, "\n")
}
