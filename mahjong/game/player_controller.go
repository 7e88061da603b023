package game

import (
	"github.com/ratel-online/mahjong16/consts"
	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
)

type playerController struct {
	seat       int
	player     Player
	hand       *Hand
	drawn      tile.Tile
	melds      []Meld
	flowers    []tile.Tile
	pile       *Pile
	introduced bool
}

func newPlayerController(seat int, player Player) *playerController {
	return &playerController{
		seat:    seat,
		player:  player,
		hand:    NewHand(),
		drawn:   tile.None,
		melds:   make([]Meld, 0, 5),
		flowers: make([]tile.Tile, 0, 8),
		pile:    NewPile(),
	}
}

func (c *playerController) Seat() int {
	return c.seat
}

func (c *playerController) Name() string {
	return c.player.NickName()
}

func (c *playerController) Player() Player {
	return c.player
}

// Hand is the concealed hand without the drawn tile.
func (c *playerController) Hand() []tile.Tile {
	return c.hand.Tiles()
}

// Tiles is the concealed hand plus the drawn tile, if any.
func (c *playerController) Tiles() []tile.Tile {
	tiles := c.hand.Tiles()
	if c.drawn != tile.None {
		tiles = append(tiles, c.drawn)
	}
	return tiles
}

func (c *playerController) Drawn() tile.Tile {
	return c.drawn
}

func (c *playerController) SetDrawn(t tile.Tile) {
	c.drawn = t
}

func (c *playerController) AddTiles(tiles ...tile.Tile) {
	c.hand.AddTiles(tiles...)
}

func (c *playerController) AddFlower(t tile.Tile) {
	c.flowers = append(c.flowers, t)
}

func (c *playerController) Flowers() []tile.Tile {
	return util.SliceCopy(c.flowers)
}

func (c *playerController) Melds() []Meld {
	return append([]Meld{}, c.melds...)
}

func (c *playerController) Pile() *Pile {
	return c.pile
}

// Units counts tiles with every meld as three; 16 at rest.
func (c *playerController) Units() int {
	units := c.hand.Size() + consts.MeldUnits*len(c.melds)
	if c.drawn != tile.None {
		units++
	}
	return units
}

func (c *playerController) keepDrawn() {
	if c.drawn != tile.None {
		c.hand.AddTiles(c.drawn)
		c.drawn = tile.None
	}
}

// Discard plays a tile of kind from hand or the drawn tile into the river.
func (c *playerController) Discard(kind tile.Tile) (tile.Tile, error) {
	if !util.ContainsKind(c.Tiles(), kind) {
		return tile.None, illegal("你沒有%s這張牌", kind)
	}
	c.keepDrawn()
	removed, err := c.hand.RemoveKinds(kind)
	if err != nil {
		return tile.None, err
	}
	c.pile.Add(removed[0])
	return removed[0], nil
}

func (c *playerController) ConcealedKong(kind tile.Tile) (Meld, error) {
	if util.CountKind(c.Tiles(), kind) < 4 {
		return Meld{}, illegal("%s不足四張，不能暗槓", kind)
	}
	c.keepDrawn()
	removed, err := c.hand.RemoveKinds(util.Repeat(kind, 4)...)
	if err != nil {
		return Meld{}, err
	}
	meld := NewMeld(mjconsts.MELD_CONCEALED_KONG, -1, removed)
	c.melds = append(c.melds, meld)
	return meld, nil
}

// Claim builds an open meld from discarded and the given kinds out of hand.
func (c *playerController) Claim(kind mjconsts.Meld, discarded tile.Tile, from int, kinds []tile.Tile) (Meld, error) {
	removed, err := c.hand.RemoveKinds(kinds...)
	if err != nil {
		return Meld{}, err
	}
	meld := NewMeld(kind, from, append(removed, discarded))
	c.melds = append(c.melds, meld)
	return meld, nil
}
