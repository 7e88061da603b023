package ui

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/ratel-online/mahjong16/mahjong/tile"
)

var Stdout io.Writer = color.Output

var Stdin io.Reader = os.Stdin

var suitColors = map[tile.Suit]func(string, ...interface{}) string{
	tile.SuitWan:    color.New(color.FgHiRed).SprintfFunc(),
	tile.SuitTong:   color.New(color.FgHiCyan).SprintfFunc(),
	tile.SuitTiao:   color.New(color.FgHiGreen).SprintfFunc(),
	tile.SuitHonor:  color.New(color.FgHiYellow).SprintfFunc(),
	tile.SuitFlower: color.New(color.FgHiMagenta).SprintfFunc(),
}

// PaintTile colours a tile name by suit. Invalid ids render as "?".
func PaintTile(t tile.Tile) string {
	if !t.Valid() {
		return t.String()
	}
	return suitColors[t.Suit()]("%s", t.String())
}

func PaintTiles(tiles []tile.Tile) string {
	painted := make([]string, 0, len(tiles))
	for _, t := range tiles {
		painted = append(painted, PaintTile(t))
	}
	return strings.Join(painted, " ")
}
