package transcript

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/mahjong16/mahjong/event"
	"github.com/ratel-online/mahjong16/mahjong/game"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record types.
const (
	TypePrompt   = "prompt"
	TypeResponse = "response"
	TypeEvent    = "event"
	TypeOutcome  = "outcome"
)

// Record is one line of a transcript.
type Record struct {
	Time     time.Time `json:"time"`
	Type     string    `json:"type"`
	Seat     int       `json:"seat"`
	Player   string    `json:"player,omitempty"`
	Text     string    `json:"text,omitempty"`
	Response string    `json:"response,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Writer appends records as JSON lines. It is safe for concurrent use.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	now    func() time.Time
}

func New(out io.Writer) *Writer {
	return &Writer{out: out, now: time.Now}
}

// Open creates dir/name.jsonl, or a time-stamped name when name is empty.
func Open(dir, name string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if name == "" {
		name = time.Now().Format("20060102150405")
	}
	file, err := os.OpenFile(filepath.Join(dir, name+".jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	w := New(file)
	w.closer = file
	return w, nil
}

// SetClock replaces the time source.
func (w *Writer) SetClock(now func() time.Time) {
	w.now = now
}

func (w *Writer) Write(r Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if r.Time.IsZero() {
		r.Time = w.now()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.out.Write(append(data, '\n'))
	return err
}

func (w *Writer) write(r Record) {
	if err := w.Write(r); err != nil {
		log.Error(err)
	}
}

func (w *Writer) OnEvent(l *event.Log, e event.Event) {
	player := ""
	if e.Seat >= 0 {
		player = l.Name(e.Seat)
	}
	w.write(Record{Type: TypeEvent, Seat: e.Seat, Player: player, Text: l.Narrate(e.Text)})
}

func (w *Writer) Outcome(outcome game.Outcome, names []string) {
	player := ""
	if outcome.Winner >= 0 {
		player = names[outcome.Winner]
	}
	w.write(Record{Type: TypeOutcome, Seat: outcome.Winner, Player: player, Text: outcome.String()})
}

func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// Wrap records every prompt p receives and every answer it gives.
func (w *Writer) Wrap(p game.Player) game.Player {
	return &recordingPlayer{Player: p, w: w}
}

type recordingPlayer struct {
	game.Player
	w *Writer
}

func (p *recordingPlayer) DecisionTimeout() (time.Duration, bool) {
	if timed, ok := p.Player.(game.Timed); ok {
		return timed.DecisionTimeout()
	}
	return 0, false
}

func (p *recordingPlayer) Decide(ctx context.Context, req game.Request) (game.Action, error) {
	p.w.write(Record{Type: TypePrompt, Seat: req.Seat, Player: p.NickName(), Text: req.Prompt})
	action, err := p.Player.Decide(ctx, req)
	r := Record{Type: TypeResponse, Seat: req.Seat, Player: p.NickName()}
	if err != nil {
		r.Error = err.Error()
	} else {
		r.Response = action.String()
	}
	p.w.write(r)
	return action, err
}
