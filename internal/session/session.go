// Package session runs user commands asynchronously. Every submitted command
// gets its own goroutine, its own append-only transcript and its own event
// channel, so sessions overlap freely without sharing state.
package session

import (
	"fmt"
	"sync"
	"time"
)

// State is the lifecycle position of a session.
type State int

const (
	Pending State = iota
	Running
	Succeeded
	Failed
	Errored
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed || s == Errored
}

// Status is a session's state plus its outcome. ExitCode is meaningful for
// Succeeded and Failed, Err for Errored.
type Status struct {
	State    State
	ExitCode int
	Err      string
}

// EventKind distinguishes output lines from state transitions.
type EventKind int

const (
	EventOutput EventKind = iota
	EventState
)

// Event is pushed on a session's channel for every appended line and every
// state transition.
type Event struct {
	SessionID string
	Kind      EventKind
	Line      string
	Status    Status
}

// Session is one submitted command.
type Session struct {
	ID      string
	Command string
	Started time.Time

	mu     sync.RWMutex
	lines  []string
	status Status
	pid    int

	events chan Event
	done   chan struct{}
}

func newSession(id, command string, buffer int) *Session {
	return &Session{
		ID:      id,
		Command: command,
		Started: time.Now(),
		status:  Status{State: Pending},
		events:  make(chan Event, buffer),
		done:    make(chan struct{}),
	}
}

// ShortID returns the first eight characters of the ID.
func (s *Session) ShortID() string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}

// Lines returns a copy of the transcript so far.
func (s *Session) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Status returns the current state and outcome.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Events returns the session's event channel. It is closed after the
// terminal state event has been sent.
func (s *Session) Events() <-chan Event { return s.events }

// Done is closed once the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} { return s.done }

// Wait blocks until the session reaches a terminal state and returns it.
func (s *Session) Wait() Status {
	<-s.done
	return s.Status()
}

func (s *Session) appendLine(line string) {
	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
}

func (s *Session) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

func (s *Session) setPID(pid int) {
	s.mu.Lock()
	s.pid = pid
	s.mu.Unlock()
}

// runningPID returns the child's PID while the session is running.
func (s *Session) runningPID() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pid, s.pid > 0 && s.status.State == Running
}

// Completion markers appended after the command's own output.
func completedMarker(code int) string {
	return fmt.Sprintf("[Command completed with exit code %d]", code)
}

func failedMarker(code int) string {
	return fmt.Sprintf("[Command failed with exit code %d]", code)
}

func errorMarker(err error) string {
	return fmt.Sprintf("[Error executing command: %v]", err)
}
