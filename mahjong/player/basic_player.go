package player

import (
	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/tile"
)

type basicPlayer struct {
	name string
}

func (p basicPlayer) NickName() string {
	return p.name
}

// firstOption turns spec into an action using its first choice. Discards default to the
// drawn tile.
func firstOption(spec game.ActionSpec, state game.State) game.Action {
	choice := tile.None
	if len(spec.Tiles) > 0 {
		choice = spec.Tiles[0]
	}
	switch spec.Kind {
	case mjconsts.DISCARD:
		if state.Drawn != tile.None {
			return game.DiscardAction(state.Drawn)
		}
		return game.DiscardAction(state.Hand[len(state.Hand)-1])
	case mjconsts.CONCEALED_KONG:
		return game.ConcealedKongAction(choice)
	case mjconsts.SELF_DRAW_WIN:
		return game.SelfDrawWinAction()
	case mjconsts.WIN:
		return game.WinAction()
	case mjconsts.PONG:
		return game.PongAction(tile.None)
	case mjconsts.KONG:
		return game.KongAction()
	case mjconsts.CHOW:
		return game.ChowAction(choice, tile.None)
	}
	return game.PassAction()
}
