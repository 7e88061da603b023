package game

import (
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
)

type Hand struct {
	tiles []tile.Tile
}

func NewHand() *Hand {
	return &Hand{tiles: make([]tile.Tile, 0, 17)}
}

func (h *Hand) AddTiles(tiles ...tile.Tile) {
	h.tiles = append(h.tiles, tiles...)
	util.SortTiles(h.tiles)
}

func (h *Hand) Tiles() []tile.Tile {
	return util.SliceCopy(h.tiles)
}

func (h *Hand) Empty() bool {
	return len(h.tiles) == 0
}

func (h *Hand) Size() int {
	return len(h.tiles)
}

func (h *Hand) Count(kind tile.Tile) int {
	return util.CountKind(h.tiles, kind)
}

// RemoveKinds takes one tile per kind. Nothing changes when a kind is missing.
func (h *Hand) RemoveKinds(kinds ...tile.Tile) ([]tile.Tile, error) {
	remaining, removed, err := util.RemoveKinds(h.tiles, kinds...)
	if err != nil {
		return nil, err
	}
	h.tiles = remaining
	return removed, nil
}
