package player

import (
	"context"

	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
)

type goodPlayer struct {
	basicPlayer
}

func NewGoodPlayer(name string) game.Player {
	return goodPlayer{basicPlayer: basicPlayer{name: name}}
}

var preference = []mjconsts.Action{
	mjconsts.SELF_DRAW_WIN,
	mjconsts.WIN,
	mjconsts.CONCEALED_KONG,
	mjconsts.KONG,
	mjconsts.PONG,
	mjconsts.CHOW,
}

func (p goodPlayer) Decide(_ context.Context, req game.Request) (game.Action, error) {
	state := req.State
	for _, kind := range preference {
		spec, ok := req.Allows(kind)
		if !ok {
			continue
		}
		switch kind {
		case mjconsts.PONG:
			remaining, _, err := util.RemoveKinds(state.Hand, util.Repeat(state.LastDiscard.Kind(), 2)...)
			if err != nil {
				return game.PassAction(), nil
			}
			return game.PongAction(MostIsolated(remaining)), nil
		case mjconsts.CHOW:
			anchor := spec.Tiles[0]
			remaining, _, err := util.RemoveKinds(state.Hand, game.ChowTiles(state.Hand, anchor, state.LastDiscard)...)
			if err != nil {
				return game.PassAction(), nil
			}
			return game.ChowAction(anchor, MostIsolated(remaining)), nil
		default:
			return firstOption(spec, state), nil
		}
	}
	if _, ok := req.Allows(mjconsts.DISCARD); ok {
		tiles := state.Hand
		if state.Drawn != tile.None {
			tiles = append(util.SliceCopy(tiles), state.Drawn)
		}
		return game.DiscardAction(MostIsolated(tiles)), nil
	}
	return game.PassAction(), nil
}

// MostIsolated picks the tile that works least with the others. Honours lose ties.
func MostIsolated(tiles []tile.Tile) tile.Tile {
	counts := util.KindCounts(tiles)
	best, bestScore := tile.None, 0
	for _, t := range tiles {
		score := connectedness(t, counts)
		if best == tile.None || score < bestScore || (score == bestScore && t.IsHonor()) {
			best, bestScore = t, score
		}
	}
	return best
}

// connectedness: 3 per other copy, 2 per neighbouring rank, 1 per rank two away.
func connectedness(t tile.Tile, counts map[tile.Tile]int) int {
	kind := t.Kind()
	score := (counts[kind] - 1) * 3
	if !t.IsNumeral() {
		return score
	}
	for _, step := range []int{-2, -1, 1, 2} {
		neighbour, ok := kind.Next(step)
		if !ok || counts[neighbour] == 0 {
			continue
		}
		if step == -1 || step == 1 {
			score += 2
		} else {
			score++
		}
	}
	return score
}
