// Package console is the line-oriented front end used when no terminal is
// attached: commands come from an input stream, session output is printed
// with a short session prefix and telemetry goes to the log.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/deck/internal/models"
	"github.com/Guliveer/vitalis/deck/internal/session"
)

// summaryEvery is the minimum gap between two info-level telemetry lines.
const summaryEvery = 10 * time.Second

// Runner starts commands.
type Runner interface {
	Submit(command string) *session.Session
	Wait()
}

// Console relays commands and their output between streams.
type Console struct {
	runner    Runner
	rateLabel string
	logger    *zap.Logger

	outMu sync.Mutex
	out   io.Writer

	relays sync.WaitGroup

	snapMu      sync.Mutex
	lastSummary time.Time
}

// New creates a Console writing session output to out.
func New(runner Runner, out io.Writer, rateLabel string, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		runner:    runner,
		rateLabel: rateLabel,
		logger:    logger.Named("console"),
		out:       out,
	}
}

// Run submits every line read from in as a command. At end of input it waits
// for the submitted sessions to finish and their output to be printed.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				c.runner.Wait()
				c.relays.Wait()
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading commands: %w", err)
					}
				default:
				}
				return nil
			}
			c.Submit(line)
		}
	}
}

// Submit starts one command and relays its output. Blank lines are ignored.
func (c *Console) Submit(line string) *session.Session {
	s := c.runner.Submit(line)
	if s == nil {
		return nil
	}
	c.relays.Add(1)
	go c.relay(s)
	return s
}

func (c *Console) relay(s *session.Session) {
	defer c.relays.Done()
	prefix := "[" + s.ShortID() + "] "
	for ev := range s.Events() {
		switch ev.Kind {
		case session.EventOutput:
			c.println(prefix + ev.Line)
		case session.EventState:
			if ev.Status.State.Terminal() {
				c.logger.Info("Command finished",
					zap.String("id", s.ID),
					zap.String("command", s.Command),
					zap.Stringer("state", ev.Status.State),
					zap.Int("exit_code", ev.Status.ExitCode))
			}
		}
	}
}

func (c *Console) println(line string) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintln(c.out, line)
}

// OnSnapshot logs every cycle at debug level and a compact summary at info
// level at most once per summaryEvery.
func (c *Console) OnSnapshot(snap models.Snapshot) {
	fields := summaryFields(snap, c.rateLabel)
	c.logger.Debug("Snapshot", fields...)

	c.snapMu.Lock()
	due := snap.Timestamp.Sub(c.lastSummary) >= summaryEvery
	if due {
		c.lastSummary = snap.Timestamp
	}
	c.snapMu.Unlock()

	if due {
		c.logger.Info("Telemetry", fields...)
	}
}

func summaryFields(snap models.Snapshot, rateLabel string) []zap.Field {
	fields := []zap.Field{zap.Uint64("cycle", snap.Cycle)}
	if snap.CPU != nil {
		fields = append(fields, zap.Float64("cpu_percent", snap.CPU.Percent))
	}
	if snap.Memory != nil {
		fields = append(fields, zap.Float64("memory_percent", snap.Memory.Percent))
	}
	if snap.Disk != nil {
		fields = append(fields, zap.Float64("disk_percent", snap.Disk.Percent))
		if snap.Disk.Rate != nil {
			fields = append(fields,
				zap.Float64("disk_read", snap.Disk.Rate.Read),
				zap.Float64("disk_write", snap.Disk.Rate.Write))
		}
	}
	if snap.Network != nil && snap.Network.Rate != nil {
		fields = append(fields,
			zap.Float64("net_sent", snap.Network.Rate.Sent),
			zap.Float64("net_recv", snap.Network.Rate.Recv))
	}
	if len(snap.Processes) > 0 {
		fields = append(fields, zap.String("top_process", snap.Processes[0].Name))
	}
	return append(fields, zap.String("rate_unit", rateLabel))
}
