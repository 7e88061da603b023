package player

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ratel-online/mahjong16/consts"
	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/ui"
	"github.com/ratel-online/mahjong16/mahjong/util"
)

type humanPlayer struct {
	basicPlayer
}

func NewHumanPlayer(name string) game.Player {
	return humanPlayer{basicPlayer: basicPlayer{name: name}}
}

// DecisionTimeout lets a person think as long as they need.
func (p humanPlayer) DecisionTimeout() (time.Duration, bool) {
	return 0, true
}

// Decide shows the table and a numbered menu. The answer may be a menu number, a tile
// name to discard, or a JSON answer.
func (p humanPlayer) Decide(ctx context.Context, req game.Request) (game.Action, error) {
	ui.Message.TurnStarted(p.name)
	ui.Message.Table(req.State)
	if req.Notice != "" {
		ui.Message.Rejected(req.Notice)
	}
	options := menu(req)
	lines := make([]string, 0, len(options)+1)
	for i, option := range options {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, option))
	}
	lines = append(lines, "請輸入編號、牌名或 JSON：")
	ui.Printlns(lines[:len(lines)-1])
	return ui.PromptParsed(ctx, lines[len(lines)-1], func(input string) (game.Action, error) {
		return parseAnswer(input, options)
	})
}

func parseAnswer(input string, options []game.Action) (game.Action, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(options) {
			return game.Action{}, fmt.Errorf("%w: 沒有選項 %d", consts.ErrorsIllegalAction, n)
		}
		return options[n-1], nil
	}
	if t, err := tile.Parse(input); err == nil {
		return game.DiscardAction(t), nil
	}
	return game.ParseAction(input)
}

// menu expands the allowed actions into one entry per choice.
func menu(req game.Request) []game.Action {
	options := make([]game.Action, 0)
	for _, spec := range req.Allowed {
		switch spec.Kind {
		case mjconsts.DISCARD:
			tiles := req.State.Hand
			if req.State.Drawn != tile.None {
				tiles = append(util.SliceCopy(tiles), req.State.Drawn)
			}
			seen := map[tile.Tile]bool{}
			for _, t := range util.SortTiles(util.SliceCopy(tiles)) {
				if !seen[t.Kind()] {
					seen[t.Kind()] = true
					options = append(options, game.DiscardAction(t.Kind()))
				}
			}
		case mjconsts.CONCEALED_KONG:
			for _, kind := range spec.Tiles {
				options = append(options, game.ConcealedKongAction(kind))
			}
		case mjconsts.CHOW:
			for _, anchor := range spec.Tiles {
				options = append(options, game.ChowAction(anchor, tile.None))
			}
		default:
			options = append(options, firstOption(spec, req.State))
		}
	}
	return options
}
