package tile

import (
	"fmt"
	"strings"

	"github.com/ratel-online/mahjong16/consts"
)

type Tile int

type Suit int

const (
	SuitWan Suit = iota
	SuitTong
	SuitTiao
	SuitHonor
	SuitFlower
)

const (
	WanBase    Tile = 0
	TongBase   Tile = 36
	TiaoBase   Tile = 72
	HonorBase  Tile = 108
	FlowerBase Tile = 136
	Total           = 144

	// None marks an absent tile, e.g. no drawn tile or no discard yet.
	None Tile = -1

	Copies = 4
)

var (
	rankNames   = []string{"一", "二", "三", "四", "五", "六", "七", "八", "九"}
	suitNames   = []string{"萬", "筒", "條"}
	honorNames  = []string{"東風", "南風", "西風", "北風", "紅中", "發財", "白板"}
	flowerNames = []string{"春", "夏", "秋", "冬", "梅", "蘭", "菊", "竹"}

	byName = map[string]Tile{}
)

func init() {
	for s, suit := range suitNames {
		for r, rank := range rankNames {
			byName[rank+suit] = Tile(s*36 + r*Copies)
		}
	}
	for i, name := range honorNames {
		byName[name] = HonorBase + Tile(i*Copies)
	}
	for i, name := range flowerNames {
		byName[name] = FlowerBase + Tile(i)
	}
}

func (t Tile) Valid() bool {
	return t >= 0 && t < Total
}

func (t Tile) IsNumeral() bool {
	return t >= WanBase && t < HonorBase
}

func (t Tile) IsHonor() bool {
	return t >= HonorBase && t < FlowerBase
}

func (t Tile) IsFlower() bool {
	return t >= FlowerBase && t < Total
}

// Kind is the canonical id shared by all copies of a tile.
func (t Tile) Kind() Tile {
	if t.IsFlower() {
		return t
	}
	return t - t%Copies
}

func (t Tile) Suit() Suit {
	switch {
	case t.IsFlower():
		return SuitFlower
	case t.IsHonor():
		return SuitHonor
	default:
		return Suit(t / 36)
	}
}

// Rank is 1..9 for numerals, 1..7 for honours and 1..8 for flowers.
func (t Tile) Rank() int {
	switch {
	case t.IsFlower():
		return int(t-FlowerBase) + 1
	case t.IsHonor():
		return int(t-HonorBase)/Copies + 1
	default:
		return int(t%36)/Copies + 1
	}
}

// Next returns the kind step ranks away from t within its suit.
func (t Tile) Next(step int) (Tile, bool) {
	if !t.IsNumeral() {
		return None, false
	}
	rank := t.Rank() + step
	if rank < 1 || rank > 9 {
		return None, false
	}
	return Tile(int(t.Suit())*36 + (rank-1)*Copies), true
}

func (t Tile) Name() (string, error) {
	switch {
	case !t.Valid():
		return "", fmt.Errorf("%w: tile id %d out of range", consts.ErrorsInvalidTileName, int(t))
	case t.IsFlower():
		return flowerNames[t-FlowerBase], nil
	case t.IsHonor():
		return honorNames[t.Rank()-1], nil
	default:
		return rankNames[t.Rank()-1] + suitNames[t.Suit()], nil
	}
}

func (t Tile) String() string {
	name, err := t.Name()
	if err != nil {
		return "?"
	}
	return name
}

// Parse resolves a display name to the canonical tile of its kind.
func Parse(name string) (Tile, error) {
	t, ok := byName[strings.TrimSpace(name)]
	if !ok {
		return None, fmt.Errorf("%w: %q", consts.ErrorsInvalidTileName, name)
	}
	return t, nil
}

func ParseList(names ...string) ([]Tile, error) {
	tiles := make([]Tile, 0, len(names))
	for _, name := range names {
		t, err := Parse(name)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// Kinds lists the 34 playable kinds in id order.
func Kinds() []Tile {
	kinds := make([]Tile, 0, 34)
	for t := WanBase; t < FlowerBase; t += Copies {
		kinds = append(kinds, t)
	}
	return kinds
}

func Flowers() []Tile {
	flowers := make([]Tile, 0, len(flowerNames))
	for t := FlowerBase; t < Total; t++ {
		flowers = append(flowers, t)
	}
	return flowers
}

func ToTileString(tiles []Tile) string {
	ret := make([]string, 0, len(tiles))
	for _, t := range tiles {
		ret = append(ret, t.String())
	}
	return strings.Join(ret, ",")
}
