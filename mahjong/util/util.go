package util

import (
	"fmt"
	"sort"

	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/tile"
)

// SortTiles sorts tiles in place by id and returns them.
func SortTiles(tiles []tile.Tile) []tile.Tile {
	sort.Slice(tiles, func(i, j int) bool { return tiles[i] < tiles[j] })
	return tiles
}

// SliceCopy 拷贝一个切片
func SliceCopy(s []tile.Tile) []tile.Tile {
	var slice = make([]tile.Tile, len(s))
	copy(slice, s)
	return slice
}

// KindCounts counts tiles per kind.
func KindCounts(tiles []tile.Tile) map[tile.Tile]int {
	counts := make(map[tile.Tile]int, len(tiles))
	for _, t := range tiles {
		counts[t.Kind()]++
	}
	return counts
}

// CountKind counts the tiles sharing kind's kind.
func CountKind(tiles []tile.Tile, kind tile.Tile) int {
	count := 0
	for _, t := range tiles {
		if t.Kind() == kind.Kind() {
			count++
		}
	}
	return count
}

func ContainsKind(tiles []tile.Tile, kind tile.Tile) bool {
	return CountKind(tiles, kind) > 0
}

// RemoveKinds removes one tile of each requested kind and returns the rest together
// with the concrete tiles taken. Availability of every kind is checked before
// anything is removed; the input slice is never modified.
func RemoveKinds(tiles []tile.Tile, kinds ...tile.Tile) ([]tile.Tile, []tile.Tile, error) {
	need := KindCounts(kinds)
	have := KindCounts(tiles)
	for kind, n := range need {
		if have[kind] < n {
			return nil, nil, fmt.Errorf("%w: need %d %s, have %d", consts.ErrorsIllegalAction, n, kind, have[kind])
		}
	}
	remaining := make([]tile.Tile, 0, len(tiles))
	removed := make([]tile.Tile, 0, len(kinds))
	for _, t := range tiles {
		if need[t.Kind()] > 0 {
			need[t.Kind()]--
			removed = append(removed, t)
			continue
		}
		remaining = append(remaining, t)
	}
	return remaining, removed, nil
}

// Repeat returns n copies of kind.
func Repeat(kind tile.Tile, n int) []tile.Tile {
	tiles := make([]tile.Tile, n)
	for i := range tiles {
		tiles[i] = kind
	}
	return tiles
}
