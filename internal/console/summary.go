package console

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Guliveer/vitalis/deck/internal/models"
)

const notAvailable = "N/A"

// summaryProcesses is how many processes WriteSummary lists.
const summaryProcesses = 5

// WriteSummary prints one snapshot as a two-column table.
func WriteSummary(w io.Writer, snap models.Snapshot, rateLabel string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Metric", "Value").
		Rows(summaryRows(snap, rateLabel)...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func summaryRows(snap models.Snapshot, rateLabel string) [][]string {
	rows := [][]string{{"Time", snap.Timestamp.Format(time.RFC3339)}}

	if h := snap.Host; h != nil {
		rows = append(rows, []string{"Platform", naIfEmpty(h.Platform)})
		uptime := notAvailable
		if !h.BootTime.IsZero() {
			uptime = h.Uptime.String()
		}
		rows = append(rows, []string{"Uptime", uptime})
	}

	cpu := notAvailable
	if snap.CPU != nil {
		cpu = fmt.Sprintf("%.1f%% (%d logical, %d physical)", snap.CPU.Percent, snap.CPU.Logical, snap.CPU.Physical)
		if snap.CPU.FrequencyMHz != nil {
			cpu += fmt.Sprintf(" @ %.0f MHz", *snap.CPU.FrequencyMHz)
		}
	}
	rows = append(rows, []string{"CPU", cpu})

	mem := notAvailable
	if snap.Memory != nil {
		mem = fmt.Sprintf("%.1f%% (%d of %d bytes)", snap.Memory.Percent, snap.Memory.Used, snap.Memory.Total)
	}
	rows = append(rows, []string{"Memory", mem})

	disk, diskIO := notAvailable, notAvailable
	if snap.Disk != nil {
		disk = fmt.Sprintf("%s %.1f%% (%d free)", snap.Disk.Path, snap.Disk.Percent, snap.Disk.Free)
		if snap.Disk.Rate != nil {
			diskIO = fmt.Sprintf("read %.1f %s, write %.1f %s", snap.Disk.Rate.Read, rateLabel, snap.Disk.Rate.Write, rateLabel)
		}
	}
	rows = append(rows, []string{"Disk", disk}, []string{"Disk I/O", diskIO})

	netRate, conns := notAvailable, notAvailable
	if snap.Network != nil {
		if snap.Network.Rate != nil {
			netRate = fmt.Sprintf("sent %.1f %s, recv %.1f %s", snap.Network.Rate.Sent, rateLabel, snap.Network.Rate.Recv, rateLabel)
		}
		if snap.Network.Connections != nil {
			conns = fmt.Sprint(*snap.Network.Connections)
		}
	}
	rows = append(rows, []string{"Network", netRate}, []string{"Connections", conns})

	for i, p := range snap.Processes {
		if i == summaryProcesses {
			break
		}
		rows = append(rows, []string{
			fmt.Sprintf("Process #%d", i+1),
			fmt.Sprintf("%s (pid %d, %s) cpu %.1f%% mem %.1f%% user %s",
				p.Name, p.PID, naIfEmpty(p.Status), p.CPU, p.Memory, naIfEmpty(p.User)),
		})
	}
	return rows
}

func naIfEmpty(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
