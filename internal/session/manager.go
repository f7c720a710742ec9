package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/deck/internal/config"
)

// Manager starts sessions and tracks them for listing and shutdown.
type Manager struct {
	shell  string
	usePTY bool
	buffer int
	logger *zap.Logger

	mu       sync.Mutex
	sessions []*Session
	wg       sync.WaitGroup

	quit     chan struct{}
	quitOnce sync.Once
}

// NewManager creates a Manager running commands through cfg.Path.
func NewManager(cfg config.ShellConfig, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	buffer := cfg.EventBuffer
	if buffer <= 0 {
		buffer = 1
	}
	return &Manager{
		shell:  cfg.Path,
		usePTY: cfg.PTY,
		buffer: buffer,
		logger: logger.Named("session"),
		quit:   make(chan struct{}),
	}
}

// Submit starts command on its own goroutine and returns immediately. A blank
// command is ignored and yields nil.
func (m *Manager) Submit(command string) *Session {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}

	s := newSession(uuid.NewString(), command, m.buffer)

	m.mu.Lock()
	m.sessions = append(m.sessions, s)
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(s)

	m.logger.Debug("Session submitted", zap.String("id", s.ID), zap.String("command", command))
	return s
}

// Sessions returns every submitted session in submission order.
func (m *Manager) Sessions() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, len(m.sessions))
	copy(out, m.sessions)
	return out
}

// Wait blocks until every submitted session has finished.
func (m *Manager) Wait() { m.wg.Wait() }

// Shutdown asks every running command's process group to terminate and
// waits for the sessions to finish or ctx to expire. Events that nobody
// reads are dropped from then on.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.quitOnce.Do(func() { close(m.quit) })

	for _, s := range m.Sessions() {
		pid, ok := s.runningPID()
		if !ok {
			continue
		}
		if err := terminate(pid); err != nil {
			m.logger.Debug("Terminate failed", zap.String("id", s.ID), zap.Int("pid", pid), zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for sessions: %w", ctx.Err())
	}
}

func (m *Manager) run(s *Session) {
	defer m.wg.Done()
	defer close(s.done)
	defer close(s.events)

	var final Status
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Session panicked", zap.String("id", s.ID), zap.Any("panic", r))
			final = m.finish(s, nil, fmt.Errorf("internal error: %v", r))
		}
		m.logger.Debug("Session finished",
			zap.String("id", s.ID),
			zap.Stringer("state", final.State),
			zap.Int("exit_code", final.ExitCode))
	}()

	m.output(s, "$ "+s.Command)
	m.transition(s, Status{State: Running})

	var code *int
	var err error
	if m.usePTY {
		code, err = m.runPTY(s)
	} else {
		code, err = m.runPipe(s)
	}
	final = m.finish(s, code, err)
}

// finish appends the completion marker and publishes the terminal state.
func (m *Manager) finish(s *Session, code *int, err error) Status {
	var st Status
	switch {
	case err != nil:
		st = Status{State: Errored, ExitCode: -1, Err: err.Error()}
		m.output(s, errorMarker(err))
	case *code == 0:
		st = Status{State: Succeeded}
		m.output(s, completedMarker(0))
	default:
		st = Status{State: Failed, ExitCode: *code}
		m.output(s, failedMarker(*code))
	}
	m.transition(s, st)
	return st
}

func (m *Manager) runPipe(s *Session) (*int, error) {
	cmd := shellCommand(m.shell, s.Command)
	configureProcess(cmd)

	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	s.setPID(cmd.Process.Pid)

	readErr := m.stream(s, out)
	waitErr := cmd.Wait()
	if readErr != nil {
		return nil, fmt.Errorf("reading output: %w", readErr)
	}
	return exitCode(waitErr)
}

// stream copies r into the transcript line by line as output arrives. A
// trailing line without a newline is kept.
func (m *Manager) stream(s *Session, r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			m.output(s, strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || isClosedPTY(err) {
				return nil
			}
			return err
		}
	}
}

// exitCode maps the result of Wait to an exit code. A process killed by a
// signal reports -1.
func exitCode(waitErr error) (*int, error) {
	code := 0
	if waitErr == nil {
		return &code, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		code = exitErr.ExitCode()
		return &code, nil
	}
	return nil, waitErr
}

func (m *Manager) output(s *Session, line string) {
	s.appendLine(line)
	m.publish(s, Event{SessionID: s.ID, Kind: EventOutput, Line: line})
}

func (m *Manager) transition(s *Session, st Status) {
	s.setStatus(st)
	m.publish(s, Event{SessionID: s.ID, Kind: EventState, Status: st})
}

// publish blocks while the event buffer is full so a slow viewer sees every
// line in order. After Shutdown events are dropped instead.
func (m *Manager) publish(s *Session, ev Event) {
	select {
	case s.events <- ev:
	case <-m.quit:
	}
}
