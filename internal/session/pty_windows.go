//go:build windows

package session

import "errors"

var errPTYUnsupported = errors.New("pty mode is not supported on windows")

func (m *Manager) runPTY(*Session) (*int, error) {
	return nil, errPTYUnsupported
}

func isClosedPTY(error) bool { return false }
