package event

import (
	"fmt"
	"strings"

	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
)

// TableSeat tags events that belong to no seat.
const TableSeat = -1

// Event is a public record. Text refers to seats through Seat placeholders and is
// rendered per viewer.
type Event struct {
	ID   int
	Seat int
	Text string
}

type Listener interface {
	OnEvent(log *Log, e Event)
}

// Seat returns the placeholder for seat inside event text.
func Seat(seat int) string {
	return fmt.Sprintf("$%d", seat)
}

type Log struct {
	names     []string
	events    []Event
	cursors   []int
	listeners []Listener
}

func NewLog(names []string) *Log {
	return &Log{
		names:   append([]string{}, names...),
		events:  make([]Event, 0, 128),
		cursors: make([]int, len(names)),
	}
}

func (l *Log) AddListener(listener Listener) {
	l.listeners = append(l.listeners, listener)
}

// Emit appends an event by seat and notifies listeners.
func (l *Log) Emit(seat int, format string, args ...interface{}) Event {
	e := Event{ID: len(l.events), Seat: seat, Text: fmt.Sprintf(format, args...)}
	l.events = append(l.events, e)
	for _, listener := range l.listeners {
		listener.OnEvent(l, e)
	}
	return e
}

func (l *Log) Len() int {
	return len(l.events)
}

func (l *Log) Events() []Event {
	return append([]Event{}, l.events...)
}

// Cursor is the number of events viewer has been shown or skipped.
func (l *Log) Cursor(viewer int) int {
	return l.cursors[viewer]
}

// Unseen renders the events viewer has not been shown yet and moves the cursor to the
// end of the log. Events viewer authored are skipped.
func (l *Log) Unseen(viewer int) []string {
	lines := make([]string, 0)
	for _, e := range l.events[l.cursors[viewer]:] {
		if e.Seat == viewer {
			continue
		}
		lines = append(lines, l.Render(viewer, e.Text))
	}
	l.cursors[viewer] = len(l.events)
	return lines
}

// Render resolves seat placeholders relative to viewer: 下家, 對家 and 上家 followed by
// the name, 你 for the viewer itself.
func (l *Log) Render(viewer int, text string) string {
	n := len(l.names)
	pairs := make([]string, 0, 2*n)
	for seat := 0; seat < n; seat++ {
		label := "你"
		if seat != viewer {
			label = mjconsts.RelativeSeat[(seat-viewer+n)%n] + l.names[seat]
		}
		pairs = append(pairs, Seat(seat), label)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Narrate renders text for an observer sitting at no seat.
func (l *Log) Narrate(text string) string {
	pairs := make([]string, 0, 2*len(l.names))
	for seat, name := range l.names {
		pairs = append(pairs, Seat(seat), name)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func (l *Log) Name(seat int) string {
	return l.names[seat]
}
