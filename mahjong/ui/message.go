package ui

import (
	"fmt"

	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/tile"
)

var Message = MessageWriter{}

type MessageWriter struct{}

func (m MessageWriter) Welcome() {
	Printfln("歡迎來到 %s%s%s%s",
		PaintTile(tile.HonorBase+16), // 紅中
		PaintTile(tile.WanBase),
		PaintTile(tile.TongBase),
		PaintTile(tile.TiaoBase),
	)
}

func (m MessageWriter) TurnStarted(playerName string) {
	Printfln("輪到你了，%s！", playerName)
}

func (m MessageWriter) Table(state game.State) {
	lines := []string{fmt.Sprintf("牌牆剩 %d 張", state.WallRemaining)}
	for seat, view := range state.Seats {
		line := fmt.Sprintf("%d %s [%d]", seat, view.Name, view.HandSize)
		for _, meld := range view.Melds {
			line += " " + meld.String()
		}
		if len(view.Flowers) > 0 {
			line += " 花:" + PaintTiles(view.Flowers)
		}
		if len(view.Discards) > 0 {
			line += " 河:" + PaintTiles(view.Discards)
		}
		lines = append(lines, line)
	}
	hand := "手牌: " + PaintTiles(state.Hand)
	if state.Drawn != tile.None {
		hand += " 摸: " + PaintTile(state.Drawn)
	}
	lines = append(lines, hand)
	Printlns(lines)
}

func (m MessageWriter) Event(text string) {
	Println(text)
}

func (m MessageWriter) Rejected(reason string) {
	Printfln("上一個回答無效：%s", reason)
}

func (m MessageWriter) GameOver(outcome game.Outcome, names []string) {
	switch outcome.Kind {
	case game.OutcomeSelfDrawWin:
		Printfln("%s 自摸 %s！", names[outcome.Winner], PaintTile(outcome.Tile))
	case game.OutcomeWin:
		Printfln("%s 胡了 %s 打出的 %s！", names[outcome.Winner], names[outcome.Discarder], PaintTile(outcome.Tile))
	default:
		Println("流局，沒有人胡牌")
		return
	}
	line := "胡牌: " + PaintTiles(outcome.Hand)
	for _, meld := range outcome.Melds {
		line += " " + meld.OwnerString()
	}
	Println(line)
}
