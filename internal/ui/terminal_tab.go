package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Guliveer/vitalis/deck/internal/session"
)

// maxTerminalLines bounds how much transcript the viewport holds.
const maxTerminalLines = 5000

// maxEventBatch caps how many queued events one message carries.
const maxEventBatch = 512

// listen waits for the next event of one session and takes whatever else is
// already queued behind it, so a chatty command costs one render per batch.
// A closed channel ends the subscription.
func listen(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		batch := []session.Event{ev}
		for len(batch) < maxEventBatch {
			select {
			case ev, ok := <-events:
				if !ok {
					return sessionEventMsg{events: batch}
				}
				batch = append(batch, ev)
			default:
				return sessionEventMsg{events: batch, source: events}
			}
		}
		return sessionEventMsg{events: batch, source: events}
	}
}

func (m Model) updateTerminal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Submit) {
		return m.submit()
	}

	if msg.Type != tea.KeyRunes &&
		key.Matches(msg, keys.ScrollUp, keys.ScrollDown, keys.PageUp, keys.PageDown) {
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		m.follow = m.output.AtBottom()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	s := m.console.Submit(line)
	if s == nil {
		return m, nil
	}
	m.follow = true
	m.transcript.open(s.ID)
	return m, listen(s.Events())
}

// refreshOutput copies the transcript into the viewport. Output that
// arrives while another tab is shown is rendered on the next switch back.
func (m *Model) refreshOutput() {
	if m.activeTab != TabTerminal {
		m.outputStale = true
		return
	}
	m.outputStale = false
	m.output.SetContent(m.transcript.String())
	if m.follow {
		m.output.GotoBottom()
	}
}

func styleTranscriptLine(line string) string {
	switch {
	case strings.HasPrefix(line, "$ "):
		return styleEcho.Render(line)
	case strings.HasPrefix(line, "[Command completed"):
		return styleSuccess.Render(line)
	case strings.HasPrefix(line, "[Command failed"), strings.HasPrefix(line, "[Error executing"):
		return styleFailure.Render(line)
	default:
		return line
	}
}

func (m Model) renderTerminal() string {
	var total, running int
	if m.console != nil {
		for _, s := range m.console.Sessions() {
			total++
			if !s.Status().State.Terminal() {
				running++
			}
		}
	}

	status := styleMuted.Render(fmt.Sprintf("%d commands, %d running", total, running))
	if running > 0 {
		status = styleWarning.Render(fmt.Sprintf("%d commands, %d running", total, running))
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, m.output.View(), m.input.View())
}
