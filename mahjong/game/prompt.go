package game

import (
	"fmt"
	"strings"

	"github.com/ratel-online/mahjong16/mahjong/tile"
)

const talkHint = `(不需要分析為什麼，如果你想要垃圾話，可以透過 "talk":"垃圾話內容" 補充)`

// buildPrompt renders the question for one decision. The seat introduction is only
// given on the first prompt.
func buildPrompt(p *playerController, unseen []string, specs []ActionSpec, notice string) string {
	var b strings.Builder
	if !p.introduced {
		p.introduced = true
		fmt.Fprintf(&b, "你是一個台灣十六張麻將的玩家，你是 %s ，你的手牌是 %s", p.Name(), tile.ToTileString(p.Hand()))
	} else {
		fmt.Fprintf(&b, "輪到你了，你的手牌是 %s", tile.ToTileString(p.Hand()))
	}
	if melds := p.Melds(); len(melds) > 0 {
		shown := make([]string, 0, len(melds))
		for _, meld := range melds {
			shown = append(shown, meld.OwnerString())
		}
		fmt.Fprintf(&b, "，你的門前有 %s", strings.Join(shown, " "))
	}
	for _, line := range unseen {
		b.WriteString("，" + line)
	}
	if drawn := p.Drawn(); drawn != tile.None {
		fmt.Fprintf(&b, "，你摸到的牌是 %s", drawn)
	}
	if notice != "" {
		fmt.Fprintf(&b, "\n上一個回答無效：%s", notice)
	}
	b.WriteString("，請問您要做什麼？")
	for _, spec := range specs {
		for _, line := range spec.Describe() {
			b.WriteString("\n* " + line)
		}
	}
	b.WriteString("\n" + talkHint)
	return b.String()
}
