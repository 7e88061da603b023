package ui

import (
	"github.com/ratel-online/mahjong16/mahjong/event"
	"github.com/ratel-online/mahjong16/mahjong/game"
)

// Observer narrates the public events of a table to the terminal.
type Observer struct{}

func NewObserver() *Observer {
	return &Observer{}
}

func (o *Observer) OnEvent(log *event.Log, e event.Event) {
	Message.Event(log.Narrate(e.Text))
}

// ShowHands prints every seat's concealed tiles once the game is over.
func (o *Observer) ShowHands(g *game.Game) {
	names := g.Players().Names()
	lines := make([]string, 0, len(names))
	for seat, name := range names {
		state := g.Snapshot(seat)
		line := name + ": " + PaintTiles(state.Hand)
		for _, meld := range state.Melds {
			line += " " + meld.OwnerString()
		}
		lines = append(lines, line)
	}
	Printlns(lines)
}
