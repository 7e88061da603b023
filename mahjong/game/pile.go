package game

import (
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
)

// Pile is one seat's discard river.
type Pile struct {
	tiles []tile.Tile
}

func NewPile() *Pile {
	return &Pile{tiles: make([]tile.Tile, 0, 32)}
}

func (p *Pile) Add(t tile.Tile) {
	p.tiles = append(p.tiles, t)
}

func (p *Pile) Tiles() []tile.Tile {
	return util.SliceCopy(p.tiles)
}

func (p *Pile) Top() tile.Tile {
	if len(p.tiles) == 0 {
		return tile.None
	}
	return p.tiles[len(p.tiles)-1]
}

// TakeTop removes the newest discard after a claim.
func (p *Pile) TakeTop() tile.Tile {
	top := p.Top()
	if top != tile.None {
		p.tiles = p.tiles[:len(p.tiles)-1]
	}
	return top
}
