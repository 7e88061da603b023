package game

import (
	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
)

// WinChecker decides whether a set of concealed tiles is a winning hand.
type WinChecker interface {
	CanWin(tiles []tile.Tile) bool
}

// SelfDrawActions lists what a seat may do on its own turn. drawn is tile.None when the
// seat discards right after a pong or chow, in which case only Discard is offered.
func SelfDrawActions(hand []tile.Tile, drawn tile.Tile, checker WinChecker) []ActionSpec {
	specs := []ActionSpec{{Kind: mjconsts.DISCARD}}
	if drawn == tile.None {
		return specs
	}
	tiles := append(util.SliceCopy(hand), drawn)
	if kinds := ConcealedKongKinds(tiles); len(kinds) > 0 {
		specs = append(specs, ActionSpec{Kind: mjconsts.CONCEALED_KONG, Tiles: kinds})
	}
	if checker.CanWin(tiles) {
		specs = append(specs, ActionSpec{Kind: mjconsts.SELF_DRAW_WIN})
	}
	return specs
}

// ClaimActions lists the claims a seat holding hand may make on discarded. Chow is
// only considered when isNext, i.e. the seat plays right after the discarder.
func ClaimActions(hand []tile.Tile, discarded tile.Tile, isNext bool, checker WinChecker) []ActionSpec {
	specs := make([]ActionSpec, 0, 4)
	if checker.CanWin(append(util.SliceCopy(hand), discarded)) {
		specs = append(specs, ActionSpec{Kind: mjconsts.WIN})
	}
	count := util.CountKind(hand, discarded)
	if count >= 3 {
		specs = append(specs, ActionSpec{Kind: mjconsts.KONG})
	}
	if count >= 2 {
		specs = append(specs, ActionSpec{Kind: mjconsts.PONG})
	}
	if isNext {
		if anchors := ChowAnchors(hand, discarded); len(anchors) > 0 {
			specs = append(specs, ActionSpec{Kind: mjconsts.CHOW, Tiles: anchors})
		}
	}
	return specs
}

// ConcealedKongKinds lists every kind held four times.
func ConcealedKongKinds(tiles []tile.Tile) []tile.Tile {
	counts := util.KindCounts(tiles)
	kinds := make([]tile.Tile, 0)
	for _, kind := range tile.Kinds() {
		if counts[kind] >= 4 {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// ChowAnchors returns the lowest kind of every run that discarded completes with two
// tiles from hand.
func ChowAnchors(hand []tile.Tile, discarded tile.Tile) []tile.Tile {
	anchors := make([]tile.Tile, 0, 3)
	if !discarded.IsNumeral() {
		return anchors
	}
	for offset := -2; offset <= 0; offset++ {
		anchor, ok := discarded.Kind().Next(offset)
		if !ok {
			continue
		}
		if _, ok := anchor.Next(2); !ok {
			continue
		}
		if ChowTiles(hand, anchor, discarded) != nil {
			anchors = append(anchors, anchor)
		}
	}
	return anchors
}

// ChowTiles returns the two kinds hand must give up to chow discarded into the run
// starting at anchor, or nil when the run is not possible.
func ChowTiles(hand []tile.Tile, anchor, discarded tile.Tile) []tile.Tile {
	if !anchor.IsNumeral() || !discarded.IsNumeral() {
		return nil
	}
	needed := make([]tile.Tile, 0, 2)
	covers := false
	for step := 0; step < 3; step++ {
		kind, ok := anchor.Kind().Next(step)
		if !ok {
			return nil
		}
		if kind == discarded.Kind() {
			covers = true
			continue
		}
		if !util.ContainsKind(hand, kind) {
			return nil
		}
		needed = append(needed, kind)
	}
	if !covers {
		return nil
	}
	return needed
}
