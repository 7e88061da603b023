package game

import (
	"fmt"

	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
)

// Meld 門前的一組牌
type Meld struct {
	kind   mjconsts.Meld // 吃、碰、槓、暗槓
	target int           // 被吃碰槓的牌是誰打出來的，暗槓為 -1
	tiles  []tile.Tile
}

func NewMeld(kind mjconsts.Meld, target int, tiles []tile.Tile) Meld {
	return Meld{kind: kind, target: target, tiles: util.SortTiles(util.SliceCopy(tiles))}
}

// String 暗槓對其他玩家不公開牌面
func (m Meld) String() string {
	tileString := tile.ToTileString(m.tiles)
	if m.kind == mjconsts.MELD_CONCEALED_KONG {
		tileString = "****"
	}
	return fmt.Sprintf("[%v]%v", mjconsts.MeldData[m.kind], tileString)
}

// OwnerString 自己看得到暗槓的牌
func (m Meld) OwnerString() string {
	return fmt.Sprintf("[%v]%v", mjconsts.MeldData[m.kind], tile.ToTileString(m.tiles))
}

func (m Meld) Kind() mjconsts.Meld {
	return m.kind
}

func (m Meld) Target() int {
	return m.target
}

func (m Meld) Tiles() []tile.Tile {
	return util.SliceCopy(m.tiles)
}

func (m Meld) IsConcealed() bool {
	return m.kind == mjconsts.MELD_CONCEALED_KONG
}
