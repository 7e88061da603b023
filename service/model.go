package service

import (
	"sync"
	"time"

	"github.com/ratel-online/mahjong16/config"
	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/player"
)

// Table is one game: it waits for remote seats, then runs to its outcome.
type Table struct {
	sync.Mutex

	ID         string    `json:"id"`
	State      int       `json:"state"`
	CreatedAt  time.Time `json:"createdAt"`
	ActiveTime time.Time `json:"activeTime"`

	seats   []config.SeatConf
	players []game.Player
	remotes map[int]*player.RemotePlayer
	outcome *game.Outcome
	err     error
	ready   chan struct{}
	done    chan struct{}
}

// TableModel is the public view of a table.
type TableModel struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Players   []string  `json:"players"`
	Remote    []int     `json:"remote"`
	Outcome   string    `json:"outcome,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newTable(id string, seats []config.SeatConf) *Table {
	now := time.Now()
	return &Table{
		ID:         id,
		State:      consts.TableStateWaiting,
		CreatedAt:  now,
		ActiveTime: now,
		seats:      append([]config.SeatConf{}, seats...),
		players:    make([]game.Player, len(seats)),
		remotes:    map[int]*player.RemotePlayer{},
		ready:      make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (t *Table) Model() TableModel {
	t.Lock()
	defer t.Unlock()
	m := TableModel{
		ID:        t.ID,
		State:     consts.TableStates[t.State],
		Players:   make([]string, 0, len(t.seats)),
		Remote:    make([]int, 0, len(t.remotes)),
		CreatedAt: t.CreatedAt,
	}
	for _, seat := range t.seats {
		m.Players = append(m.Players, seat.Name)
	}
	for seat := range t.seats {
		if _, ok := t.remotes[seat]; ok {
			m.Remote = append(m.Remote, seat)
		}
	}
	if t.outcome != nil {
		m.Outcome = t.outcome.String()
	}
	if t.err != nil {
		m.Error = t.err.Error()
	}
	return m
}

// Done is closed when the game has ended.
func (t *Table) Done() <-chan struct{} {
	return t.done
}

// Result is the outcome, or the error that stopped the game.
func (t *Table) Result() (game.Outcome, error) {
	t.Lock()
	defer t.Unlock()
	if t.outcome == nil {
		return game.Outcome{}, t.err
	}
	return *t.outcome, t.err
}

// openSeat is the first seat waiting for a remote player, or -1.
func (t *Table) openSeat() int {
	for seat, conf := range t.seats {
		if waitsForRemote(conf) && t.players[seat] == nil {
			return seat
		}
	}
	return -1
}

func waitsForRemote(seat config.SeatConf) bool {
	return seat.Kind == consts.SeatRemote || seat.Kind == consts.SeatHuman
}
