//go:build !windows

package session

import (
	"errors"
	"syscall"

	"github.com/creack/pty"
)

// runPTY runs the command on a pseudo-terminal so programs that check for a
// TTY keep their interactive formatting. Output and errors share the
// terminal, which merges them in arrival order.
func (m *Manager) runPTY(s *Session) (*int, error) {
	cmd := shellCommand(m.shell, s.Command)
	// pty.Start makes the child a session leader, so its PID is also its
	// process group ID.
	tty, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return nil, err
	}
	defer tty.Close()
	s.setPID(cmd.Process.Pid)

	readErr := m.stream(s, tty)
	waitErr := cmd.Wait()
	if readErr != nil {
		return nil, readErr
	}
	return exitCode(waitErr)
}

// isClosedPTY reports the EIO Linux returns once the child side of a PTY
// has closed.
func isClosedPTY(err error) bool {
	return errors.Is(err, syscall.EIO)
}
