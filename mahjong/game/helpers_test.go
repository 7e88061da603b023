package game_test

import (
	"context"
	"strings"
	"testing"

	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/stretchr/testify/require"
)

// scriptedPlayer answers from a queue, then falls back to passing on claims and
// discarding the drawn tile (or the first tile in hand).
type scriptedPlayer struct {
	name     string
	answers  []game.Action
	requests []game.Request
	err      error
}

func newScriptedPlayer(name string, answers ...game.Action) *scriptedPlayer {
	return &scriptedPlayer{name: name, answers: answers}
}

func (p *scriptedPlayer) NickName() string {
	return p.name
}

func (p *scriptedPlayer) Decide(_ context.Context, req game.Request) (game.Action, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return game.Action{}, p.err
	}
	if len(p.answers) > 0 {
		answer := p.answers[0]
		p.answers = p.answers[1:]
		return answer, nil
	}
	if _, ok := req.Allows(mjconsts.PASS); ok {
		return game.PassAction(), nil
	}
	if req.State.Drawn != tile.None {
		return game.DiscardAction(req.State.Drawn), nil
	}
	return game.DiscardAction(req.State.Hand[0]), nil
}

func (p *scriptedPlayer) allowedKinds(i int) []mjconsts.Action {
	kinds := make([]mjconsts.Action, 0)
	for _, spec := range p.requests[i].Allowed {
		kinds = append(kinds, spec.Kind)
	}
	return kinds
}

func scriptedPlayers(players ...*scriptedPlayer) []game.Player {
	ret := make([]game.Player, 0, len(players))
	for _, p := range players {
		ret = append(ret, p)
	}
	return ret
}

func names(t *testing.T, list string) []tile.Tile {
	t.Helper()
	if strings.TrimSpace(list) == "" {
		return nil
	}
	tiles, err := tile.ParseList(strings.Split(list, ",")...)
	require.NoError(t, err)
	return tiles
}

// buildWall lays out a wall that deals the named tiles: each hand is completed to 16
// from unused tiles in id order, then the named draws follow, then tail more unused
// tiles (all of them when tail < 0).
func buildWall(t *testing.T, hands [4]string, draws string, tail int) []tile.Tile {
	t.Helper()
	used := map[tile.Tile]int{}
	reserved := map[tile.Tile]bool{}
	concrete := func(list string) []tile.Tile {
		ret := make([]tile.Tile, 0)
		for _, kind := range names(t, list) {
			require.Less(t, used[kind], tile.Copies, "too many %s", kind)
			id := kind + tile.Tile(used[kind])
			used[kind]++
			reserved[id] = true
			ret = append(ret, id)
		}
		return ret
	}
	seatTiles := make([][]tile.Tile, 4)
	for seat, hand := range hands {
		seatTiles[seat] = concrete(hand)
	}
	drawTiles := concrete(draws)

	pool := make([]tile.Tile, 0, 136)
	for id := tile.Tile(0); id < tile.FlowerBase; id++ {
		if !reserved[id] {
			pool = append(pool, id)
		}
	}
	wall := make([]tile.Tile, 0, 136)
	for _, hand := range seatTiles {
		for len(hand) < 16 {
			hand = append(hand, pool[0])
			pool = pool[1:]
		}
		wall = append(wall, hand...)
	}
	wall = append(wall, drawTiles...)
	if tail < 0 || tail > len(pool) {
		tail = len(pool)
	}
	return append(wall, pool[:tail]...)
}

func newGame(t *testing.T, wall []tile.Tile, players []game.Player, opts ...game.Option) *game.Game {
	t.Helper()
	rules := game.DefaultRules()
	opts = append([]game.Option{game.WithDeck(game.NewDeckFromTiles(wall)), game.WithRules(rules)}, opts...)
	g, err := game.New(players, opts...)
	require.NoError(t, err)
	require.NoError(t, g.Deal())
	return g
}
