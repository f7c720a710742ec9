package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Guliveer/vitalis/deck/internal/session"
)

func output(id, line string) session.Event {
	return session.Event{SessionID: id, Kind: session.EventOutput, Line: line}
}

func TestTranscript_SessionsStayContiguous(t *testing.T) {
	tr := newTranscript(100)
	tr.open("a")
	tr.open("b")

	tr.add([]session.Event{
		output("b", "b1"),
		output("a", "a1"),
		{SessionID: "a", Kind: session.EventState},
		output("b", "b2"),
		output("a", "a2"),
	})

	if got, want := tr.String(), "a1\na2\nb1\nb2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if tr.Len() != 4 {
		t.Errorf("Len() = %d, want 4 (state events carry no line)", tr.Len())
	}
}

func TestTranscript_DropsOldestLines(t *testing.T) {
	tr := newTranscript(3)
	tr.add([]session.Event{output("a", "a1"), output("a", "a2")})
	tr.add([]session.Event{output("b", "b1"), output("b", "b2"), output("b", "b3")})

	if got, want := tr.String(), "b1\nb2\nb3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if len(tr.sections) != 1 {
		t.Errorf("sections = %d, want the emptied one removed", len(tr.sections))
	}

	tr.add([]session.Event{output("b", "b4")})
	if got, want := tr.String(), "b2\nb3\nb4"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTranscript_IgnoresStateOnlyBatches(t *testing.T) {
	tr := newTranscript(10)
	if tr.add([]session.Event{{SessionID: "a", Kind: session.EventState}}) {
		t.Error("a batch without output should report no change")
	}
}

func TestListen_BatchesQueuedEvents(t *testing.T) {
	events := make(chan session.Event, 4)
	for i := 0; i < 3; i++ {
		events <- output("a", fmt.Sprint(i))
	}

	msg, ok := listen(events)().(sessionEventMsg)
	if !ok {
		t.Fatal("expected a sessionEventMsg")
	}
	if len(msg.events) != 3 || msg.source == nil {
		t.Errorf("batch = %d events, source set = %v; want 3 and an open source", len(msg.events), msg.source != nil)
	}

	events <- output("a", "last")
	close(events)
	msg = listen(events)().(sessionEventMsg)
	if len(msg.events) != 1 || msg.source != nil {
		t.Errorf("closing batch = %d events, source set = %v; want 1 and no source", len(msg.events), msg.source != nil)
	}
	if listen(events)() != nil {
		t.Error("a drained, closed channel should end the subscription")
	}
}

func TestTerminal_LargeOutputStaysLinear(t *testing.T) {
	const total = 20000
	events := make(chan session.Event, total+1)
	for i := 1; i <= total; i++ {
		events <- output("seq", fmt.Sprint(i))
	}
	close(events)

	m := sized(t, &fakeConsole{})
	updated, _ := m.Update(runes("2"))
	m = updated.(Model)

	start := time.Now()
	cmd := listen(events)
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	elapsed := time.Since(start)

	if elapsed > 5*time.Second {
		t.Errorf("streaming %d lines took %v", total, elapsed)
	}
	if m.transcript.Len() != maxTerminalLines {
		t.Errorf("transcript holds %d lines, want %d", m.transcript.Len(), maxTerminalLines)
	}
	if !strings.Contains(m.View(), fmt.Sprint(total)) {
		t.Error("last line not visible while following output")
	}
}

func TestTerminal_OutputOnOtherTabRendersOnReturn(t *testing.T) {
	m := sized(t, &fakeConsole{})
	updated, _ := m.Update(sessionEventMsg{events: []session.Event{output("a", "hidden until shown")}})
	m = updated.(Model)
	if !m.outputStale {
		t.Fatal("output received off-tab should mark the viewport stale")
	}

	updated, _ = m.Update(runes("2"))
	m = updated.(Model)
	if m.outputStale || !strings.Contains(m.View(), "hidden until shown") {
		t.Error("switching to the terminal tab should render pending output")
	}
}
