package ui

import (
	"strings"

	"github.com/Guliveer/vitalis/deck/internal/session"
)

// section is the styled output of one session.
type section struct {
	id    string
	lines []string
}

// transcript holds the styled terminal output, one contiguous section per
// session in submission order. The total line count never exceeds limit;
// the oldest lines are dropped first.
type transcript struct {
	limit    int
	total    int
	sections []*section
	byID     map[string]*section
}

func newTranscript(limit int) *transcript {
	return &transcript{limit: limit, byID: make(map[string]*section)}
}

// open reserves a section for a session so its output lands in submission
// order even before the first event arrives.
func (t *transcript) open(id string) *section {
	if sec, ok := t.byID[id]; ok {
		return sec
	}
	sec := &section{id: id}
	t.sections = append(t.sections, sec)
	t.byID[id] = sec
	return sec
}

// add appends the output lines of events and reports whether anything
// changed.
func (t *transcript) add(events []session.Event) bool {
	changed := false
	for _, ev := range events {
		if ev.Kind != session.EventOutput {
			continue
		}
		sec := t.open(ev.SessionID)
		sec.lines = append(sec.lines, styleTranscriptLine(ev.Line))
		t.total++
		changed = true
	}
	t.trim()
	return changed
}

func (t *transcript) trim() {
	for t.total > t.limit && len(t.sections) > 0 {
		oldest := t.sections[0]
		drop := min(t.total-t.limit, len(oldest.lines))
		oldest.lines = oldest.lines[drop:]
		t.total -= drop
		if len(oldest.lines) == 0 && len(t.sections) > 1 {
			delete(t.byID, oldest.id)
			t.sections = t.sections[1:]
		}
	}
}

// Len returns the number of lines held.
func (t *transcript) Len() int { return t.total }

func (t *transcript) String() string {
	var b strings.Builder
	for _, sec := range t.sections {
		for _, line := range sec.lines {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(line)
		}
	}
	return b.String()
}
