package player

import (
	"context"

	"github.com/ratel-online/mahjong16/mahjong/game"
)

type naivePlayer struct {
	basicPlayer
}

func NewNaivePlayer(name string) game.Player {
	return naivePlayer{basicPlayer: basicPlayer{name: name}}
}

// Decide takes the first offered action.
func (p naivePlayer) Decide(_ context.Context, req game.Request) (game.Action, error) {
	return firstOption(req.Allowed[0], req.State), nil
}
