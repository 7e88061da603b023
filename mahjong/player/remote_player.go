package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
)

// Packet types sent to a remote seat.
const (
	PacketWelcome = "welcome"
	PacketPrompt  = "prompt"
	PacketOutcome = "outcome"
	PacketError   = "error"
)

// Packet is one JSON frame sent to a remote seat.
type Packet struct {
	Type    string   `json:"type"`
	Seat    int      `json:"seat"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}

// Conn is the part of a websocket connection a remote seat uses.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// RemotePlayer relays prompts to a websocket peer and parses its text frames as
// answers.
type RemotePlayer struct {
	basicPlayer
	conn Conn
	data chan string
	done chan struct{}

	mu     sync.Mutex
	online bool
}

func NewRemotePlayer(name string, conn Conn) *RemotePlayer {
	p := &RemotePlayer{
		basicPlayer: basicPlayer{name: name},
		conn:        conn,
		data:        make(chan string, 1),
		done:        make(chan struct{}),
		online:      true,
	}
	async.Async(p.listening)
	return p
}

func (p *RemotePlayer) listening() {
	defer close(p.done)
	for {
		messageType, data, err := p.conn.ReadMessage()
		if err != nil {
			log.Infof("[RemotePlayer.listening] %s offline: %v\n", p.name, err)
			p.mu.Lock()
			p.online = false
			p.mu.Unlock()
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		select {
		case p.data <- string(data):
		default:
			log.Infof("[RemotePlayer.listening] %s: dropped unsolicited %q\n", p.name, data)
		}
	}
}

func (p *RemotePlayer) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online
}

// Done is closed once the peer disconnects.
func (p *RemotePlayer) Done() <-chan struct{} {
	return p.done
}

func (p *RemotePlayer) Send(packet Packet) error {
	data, err := json.Marshal(packet)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

func (p *RemotePlayer) Decide(ctx context.Context, req game.Request) (game.Action, error) {
	select {
	case stale := <-p.data:
		log.Infof("[RemotePlayer.Decide] %s: discarded stale %q\n", p.name, stale)
	default:
	}
	options := make([]string, 0, len(req.Allowed))
	for _, spec := range req.Allowed {
		options = append(options, spec.Describe()...)
	}
	if err := p.Send(Packet{Type: PacketPrompt, Seat: req.Seat, Text: req.Prompt, Options: options}); err != nil {
		return game.Action{}, fmt.Errorf("%w: %s: %v", consts.ErrorsProviderFailure, p.name, err)
	}
	select {
	case answer := <-p.data:
		return game.ParseAction(answer)
	case <-p.done:
		return game.Action{}, fmt.Errorf("%w: %s disconnected", consts.ErrorsProviderFailure, p.name)
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}
}

func (p *RemotePlayer) Close() error {
	return p.conn.Close()
}
