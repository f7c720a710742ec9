// Package ui is the interactive terminal front end: a three-tab Bubble Tea
// program showing live telemetry, a command console and the process table.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Guliveer/vitalis/deck/internal/models"
	"github.com/Guliveer/vitalis/deck/internal/session"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	TabSystem Tab = iota
	TabTerminal
	TabProcesses
	tabCount // sentinel for wrapping
)

// tabNames maps each Tab value to its display label.
var tabNames = map[Tab]string{
	TabSystem:    "System",
	TabTerminal:  "Terminal",
	TabProcesses: "Processes",
}

// Console starts commands and lists them for display.
type Console interface {
	Submit(command string) *session.Session
	Sessions() []*session.Session
}

// SnapshotMsg delivers a sampling cycle to the program.
type SnapshotMsg models.Snapshot

// sessionEventMsg carries a batch of events from one session. source is
// nil once the session's channel has closed.
type sessionEventMsg struct {
	events []session.Event
	source <-chan session.Event
}

// chromeHeight is the number of rows taken by the header and footer.
const chromeHeight = 4

// Model is the top-level Bubble Tea model.
type Model struct {
	console   Console
	rateLabel string

	activeTab   Tab
	width       int
	height      int
	ready       bool
	snap        *models.Snapshot
	lastUpdated time.Time
	now         func() time.Time

	input       textinput.Model
	output      viewport.Model
	transcript  *transcript
	outputStale bool
	follow      bool

	procs table.Model

	cpuBar  progress.Model
	memBar  progress.Model
	diskBar progress.Model

	help help.Model
}

// New returns a Model with the System tab active. rateLabel names the unit
// of every throughput value, e.g. "KB/s".
func New(console Console, rateLabel string) Model {
	input := textinput.New()
	input.Prompt = "$ "
	input.Placeholder = "type a command and press enter"
	input.Focus()

	procs := table.New(
		table.WithColumns(processColumns(80)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(colorSecondary)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(colorPrimary)
	procs.SetStyles(styles)

	bar := func() progress.Model {
		return progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(30))
	}

	return Model{
		console:    console,
		rateLabel:  rateLabel,
		activeTab:  TabSystem,
		now:        time.Now,
		input:      input,
		output:     viewport.New(80, 10),
		transcript: newTranscript(maxTerminalLines),
		follow:     true,
		procs:      procs,
		cpuBar:     bar(),
		memBar:     bar(),
		diskBar:    bar(),
		help:       help.New(),
	}
}

// Init implements tea.Model. No initial commands are needed.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()

	case SnapshotMsg:
		snap := models.Snapshot(msg)
		m.snap = &snap
		m.lastUpdated = snap.Timestamp
		m.procs.SetRows(processRows(snap.Processes))

	case sessionEventMsg:
		if m.transcript.add(msg.events) {
			m.refreshOutput()
		}
		if msg.source == nil {
			return m, nil
		}
		return m, listen(msg.source)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Every rune typed on the terminal tab belongs to the command line.
	typing := m.activeTab == TabTerminal && msg.Type == tea.KeyRunes

	switch {
	case key.Matches(msg, keys.Interrupt):
		return m, tea.Quit
	case key.Matches(msg, keys.NextTab):
		m.setTab((m.activeTab + 1) % tabCount)
		return m, nil
	case key.Matches(msg, keys.PrevTab):
		m.setTab((m.activeTab - 1 + tabCount) % tabCount)
		return m, nil
	}

	if !typing {
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, keys.Tab1):
			m.setTab(TabSystem)
			return m, nil
		case key.Matches(msg, keys.Tab2):
			m.setTab(TabTerminal)
			return m, nil
		case key.Matches(msg, keys.Tab3):
			m.setTab(TabProcesses)
			return m, nil
		}
	}

	switch m.activeTab {
	case TabTerminal:
		return m.updateTerminal(msg)
	case TabProcesses:
		var cmd tea.Cmd
		m.procs, cmd = m.procs.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setTab(t Tab) {
	m.activeTab = t
	if t == TabTerminal {
		m.input.Focus()
		if m.outputStale {
			m.refreshOutput()
		}
	} else {
		m.input.Blur()
	}
}

// resize distributes the window between the widgets.
func (m *Model) resize() {
	body := max(m.height-chromeHeight, 3)
	inner := max(m.width-2, 10)

	m.output.Width = inner
	m.output.Height = max(body-2, 1)
	m.input.Width = max(inner-4, 1)

	m.procs.SetColumns(processColumns(inner))
	m.procs.SetHeight(max(body-1, 2))

	barWidth := min(max(inner/3, 10), 40)
	m.cpuBar.Width = barWidth
	m.memBar.Width = barWidth
	m.diskBar.Width = barWidth

	m.help.Width = m.width
	m.refreshOutput()
}

// View implements tea.Model. It renders the header, active tab content, and footer.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabContent(),
		m.renderFooter(),
	)
}

// renderHeader renders the tab bar with the active tab highlighted.
func (m Model) renderHeader() string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		name := tabNames[i]
		if i == m.activeTab {
			tabs = append(tabs, styleActiveTab.Render(name))
		} else {
			tabs = append(tabs, styleInactiveTab.Render(name))
		}
	}
	return styleHeader.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderTabContent() string {
	var content string
	switch m.activeTab {
	case TabSystem:
		content = m.renderSystem()
	case TabTerminal:
		content = m.renderTerminal()
	case TabProcesses:
		content = m.renderProcesses()
	}
	return styleContent.Width(m.width).Render(content)
}

// renderFooter renders the status line and the key help.
func (m Model) renderFooter() string {
	parts := []string{notAvailable, "up " + notAvailable}
	if m.snap != nil && m.snap.Host != nil {
		parts[0] = orNA(m.snap.Host.Platform)
		if !m.snap.Host.BootTime.IsZero() {
			parts[1] = "up " + formatUptime(m.snap.Host.Uptime)
		}
	}
	parts = append(parts, m.now().Format("15:04:05"))
	if !m.lastUpdated.IsZero() {
		parts = append(parts, fmt.Sprintf("cycle %d", m.snap.Cycle))
	}

	status := strings.Join(parts, " | ")
	return styleFooter.Width(m.width).Render(status + "\n" + m.help.View(keys))
}
