package win

import (
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
)

const kindCount = 34

// CanWin 判断牌型是否为一对加若干面子
// 穷举所有拆法，不依赖排序后的拆牌顺序
func CanWin(tiles []tile.Tile) bool {
	counts, ok := kindCounts(tiles)
	if !ok {
		return false
	}
	for i := 0; i < kindCount; i++ {
		if counts[i] < 2 {
			continue
		}
		counts[i] -= 2
		found := canFormGroups(&counts)
		counts[i] += 2
		if found {
			return true
		}
	}
	return false
}

// CanWinGreedy 逐一尝试每种对子，剩余的牌从头依次拆刻子或顺子
// 某些牌型（如 1,2,2,3,3,4）会误判为不能胡
func CanWinGreedy(tiles []tile.Tile) bool {
	if _, ok := kindCounts(tiles); !ok {
		return false
	}
	sortedTiles := make([]tile.Tile, 0, len(tiles))
	for _, t := range tiles {
		sortedTiles = append(sortedTiles, t.Kind())
	}
	util.SortTiles(sortedTiles)
	for _, pos := range FindPairPos(sortedTiles) {
		if IsAllSequenceOrTriplet(RemovePair(sortedTiles, pos)) {
			return true
		}
	}
	return false
}

func kindCounts(tiles []tile.Tile) ([kindCount]int, bool) {
	var counts [kindCount]int
	if len(tiles)%3 != 2 {
		return counts, false
	}
	for _, t := range tiles {
		if !t.Valid() || t.IsFlower() {
			return counts, false
		}
		counts[t.Kind()/tile.Copies]++
	}
	return counts, true
}

func canFormGroups(counts *[kindCount]int) bool {
	i := 0
	for i < kindCount && counts[i] == 0 {
		i++
	}
	if i == kindCount {
		return true
	}
	if counts[i] >= 3 {
		counts[i] -= 3
		found := canFormGroups(counts)
		counts[i] += 3
		if found {
			return true
		}
	}
	// runs stay inside one numeral suit
	if i < 27 && i%9 <= 6 && counts[i+1] > 0 && counts[i+2] > 0 {
		counts[i]--
		counts[i+1]--
		counts[i+2]--
		found := canFormGroups(counts)
		counts[i]++
		counts[i+1]++
		counts[i+2]++
		return found
	}
	return false
}

// FindPairPos 找出每种对子第一次出现的位置
// 传入的牌需要是已排序的
func FindPairPos(sortedTiles []tile.Tile) []int {
	var pos = []int{}
	for i := 0; i+1 < len(sortedTiles); i++ {
		if sortedTiles[i] != sortedTiles[i+1] {
			continue
		}
		pos = append(pos, i)
		for i+1 < len(sortedTiles) && sortedTiles[i+1] == sortedTiles[i] {
			i++
		}
	}
	return pos
}

// RemovePair 从已排序的牌中，移除一对
func RemovePair(sortedTiles []tile.Tile, pos int) []tile.Tile {
	remainTiles := make([]tile.Tile, 0, len(sortedTiles)-2)
	remainTiles = append(remainTiles, sortedTiles[:pos]...)
	remainTiles = append(remainTiles, sortedTiles[pos+2:]...)
	return remainTiles
}

// IsAllSequenceOrTriplet 是否全部顺或者刻
// 每次只看排头三张
func IsAllSequenceOrTriplet(sortedTiles []tile.Tile) bool {
	for len(sortedTiles) > 0 {
		if len(sortedTiles) < 3 {
			return false
		}
		if !IsTriplet(sortedTiles[0], sortedTiles[1], sortedTiles[2]) &&
			!IsSequence(sortedTiles[0], sortedTiles[1], sortedTiles[2]) {
			return false
		}
		sortedTiles = sortedTiles[3:]
	}
	return true
}

// IsSequence 是否顺子
// 字牌和花牌不能成顺
func IsSequence(tileA, tileB, tileC tile.Tile) bool {
	if !tileA.IsNumeral() {
		return false
	}
	b, ok := tileA.Kind().Next(1)
	if !ok || b != tileB.Kind() {
		return false
	}
	c, ok := tileA.Kind().Next(2)
	return ok && c == tileC.Kind()
}

// IsTriplet 是否刻子
func IsTriplet(tileA, tileB, tileC tile.Tile) bool {
	return tileA.Kind() == tileB.Kind() && tileB.Kind() == tileC.Kind()
}
