package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
)

// Deck is the wall. Tiles are drawn from the front.
type Deck struct {
	tiles []tile.Tile
}

// NewDeck shuffles a full wall with rng, or a time-seeded source when rng is nil.
func NewDeck(rng *rand.Rand, withFlowers bool) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	tiles := WallTiles(withFlowers)
	rng.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })
	return &Deck{tiles: tiles}
}

// NewDeckFromTiles keeps the given order.
func NewDeckFromTiles(tiles []tile.Tile) *Deck {
	return &Deck{tiles: util.SliceCopy(tiles)}
}

// WallTiles lists every concrete tile of a wall in id order.
func WallTiles(withFlowers bool) []tile.Tile {
	total := int(tile.FlowerBase)
	if withFlowers {
		total = tile.Total
	}
	tiles := make([]tile.Tile, 0, total)
	for t := tile.Tile(0); int(t) < total; t++ {
		tiles = append(tiles, t)
	}
	return tiles
}

func (d *Deck) NoTiles() bool {
	return len(d.tiles) == 0
}

func (d *Deck) Remaining() int {
	return len(d.tiles)
}

func (d *Deck) Tiles() []tile.Tile {
	return util.SliceCopy(d.tiles)
}

func (d *Deck) DrawOne() (tile.Tile, error) {
	tiles, err := d.Draw(1)
	if err != nil {
		return tile.None, err
	}
	return tiles[0], nil
}

func (d *Deck) Draw(amount int) ([]tile.Tile, error) {
	if amount > len(d.tiles) {
		return nil, fmt.Errorf("%w: wall has %d tiles, %d requested", consts.ErrorsInvariantViolation, len(d.tiles), amount)
	}
	tiles := util.SliceCopy(d.tiles[:amount])
	d.tiles = d.tiles[amount:]
	return tiles, nil
}

// Deal hands out size tiles per seat in seat order. Each seat replaces its flowers
// from the wall before the next seat is dealt.
func (d *Deck) Deal(seats, size int) ([][]tile.Tile, [][]tile.Tile, error) {
	hands := make([][]tile.Tile, seats)
	flowers := make([][]tile.Tile, seats)
	for seat := 0; seat < seats; seat++ {
		hand, err := d.Draw(size)
		if err != nil {
			return nil, nil, err
		}
		util.SortTiles(hand)
		flowers[seat] = make([]tile.Tile, 0)
		for len(hand) > 0 && hand[len(hand)-1].IsFlower() {
			flowers[seat] = append(flowers[seat], hand[len(hand)-1])
			replacement, err := d.DrawOne()
			if err != nil {
				return nil, nil, err
			}
			hand[len(hand)-1] = replacement
			util.SortTiles(hand)
		}
		hands[seat] = hand
	}
	return hands, flowers, nil
}
