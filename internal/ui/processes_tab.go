package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Guliveer/vitalis/deck/internal/models"
)

// processColumns sizes the table for width cells, giving the name column
// whatever the fixed columns leave over.
func processColumns(width int) []table.Column {
	fixed := []table.Column{
		{Title: "PID", Width: 7},
		{Title: "Status", Width: 9},
		{Title: "CPU %", Width: 7},
		{Title: "Mem %", Width: 7},
		{Title: "RSS MB", Width: 9},
		{Title: "User", Width: 12},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 2
	}
	name := table.Column{Title: "Name", Width: max(width-used-2, 10)}

	return []table.Column{fixed[0], name, fixed[1], fixed[2], fixed[3], fixed[4], fixed[5]}
}

func processRows(procs []models.ProcessInfo) []table.Row {
	rows := make([]table.Row, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, table.Row{
			fmt.Sprint(p.PID),
			p.Name,
			orNA(p.Status),
			fmt.Sprintf("%.1f", p.CPU),
			fmt.Sprintf("%.1f", p.Memory),
			fmt.Sprintf("%.1f", float64(p.RSS)/(1024*1024)),
			truncate(orNA(p.User), 12),
		})
	}
	return rows
}

func (m Model) renderProcesses() string {
	if m.snap == nil {
		return styleMuted.Render("Waiting for the first sample...")
	}
	title := styleMuted.Render(fmt.Sprintf("%d busiest processes by CPU", len(m.snap.Processes)))
	return lipgloss.JoinVertical(lipgloss.Left, title, m.procs.View())
}
