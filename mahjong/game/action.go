package game

import (
	"fmt"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ratel-online/mahjong16/consts"
	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/tile"
)

// Action is a provider's answer. Tile carries the discard, the concealed kong kind
// or the chow anchor; Discard is the optional discard declared with Pong or Chow.
type Action struct {
	Kind    mjconsts.Action
	Tile    tile.Tile
	Discard tile.Tile
	Talk    string
}

func DiscardAction(t tile.Tile) Action {
	return Action{Kind: mjconsts.DISCARD, Tile: t, Discard: tile.None}
}

// ConcealedKongAction declares a concealed kong; kind may be tile.None when only one
// kind qualifies.
func ConcealedKongAction(kind tile.Tile) Action {
	return Action{Kind: mjconsts.CONCEALED_KONG, Tile: kind, Discard: tile.None}
}

func SelfDrawWinAction() Action {
	return Action{Kind: mjconsts.SELF_DRAW_WIN, Tile: tile.None, Discard: tile.None}
}

func WinAction() Action {
	return Action{Kind: mjconsts.WIN, Tile: tile.None, Discard: tile.None}
}

func PongAction(discard tile.Tile) Action {
	return Action{Kind: mjconsts.PONG, Tile: tile.None, Discard: discard}
}

func KongAction() Action {
	return Action{Kind: mjconsts.KONG, Tile: tile.None, Discard: tile.None}
}

func ChowAction(anchor, discard tile.Tile) Action {
	return Action{Kind: mjconsts.CHOW, Tile: anchor, Discard: discard}
}

func PassAction() Action {
	return Action{Kind: mjconsts.PASS, Tile: tile.None, Discard: tile.None}
}

func (a Action) WithTalk(talk string) Action {
	a.Talk = talk
	return a
}

func (a Action) String() string {
	var b strings.Builder
	b.WriteString(a.Kind.String())
	if a.Tile != tile.None {
		b.WriteString(" " + a.Tile.String())
	}
	if a.Discard != tile.None {
		b.WriteString(" 丟 " + a.Discard.String())
	}
	return b.String()
}

// ActionSpec is one allowed action. Tiles lists the choices for actions that need one:
// chow anchors and concealed kong kinds.
type ActionSpec struct {
	Kind  mjconsts.Action
	Tiles []tile.Tile
}

// Describe renders the menu line with the expected answer.
func (s ActionSpec) Describe() []string {
	switch s.Kind {
	case mjconsts.DISCARD:
		return []string{`打出一張牌，請回答 {"丟":"$牌名"}`}
	case mjconsts.CONCEALED_KONG:
		lines := make([]string, 0, len(s.Tiles))
		for _, kind := range s.Tiles {
			lines = append(lines, fmt.Sprintf(`若要暗槓 %s，請回答 {"暗槓":"%s"}`, kind, kind))
		}
		return lines
	case mjconsts.SELF_DRAW_WIN:
		return []string{`自摸胡牌，請回答 {"自摸":true}`}
	case mjconsts.WIN:
		return []string{`胡牌，請回答 {"胡":true}`}
	case mjconsts.PONG:
		return []string{`碰牌，請回答 {"碰":true,"丟":"$要丟的牌"}`}
	case mjconsts.KONG:
		return []string{`槓牌，請回答 {"槓":true}`}
	case mjconsts.CHOW:
		lines := make([]string, 0, len(s.Tiles))
		for _, anchor := range s.Tiles {
			second, _ := anchor.Next(1)
			third, _ := anchor.Next(2)
			lines = append(lines, fmt.Sprintf(`若要吃 %s,%s,%s，請回答 {"吃":"%s","丟":"$要丟的牌"}`, anchor, second, third, anchor))
		}
		return lines
	case mjconsts.PASS:
		return []string{`放棄吃碰胡槓，請回答 {"放棄":true}`}
	}
	return nil
}

var (
	jsonObject = regexp.MustCompile(`(?s)\{.*\}`)
	answerKeys = map[string]mjconsts.Action{}
)

func init() {
	for action, key := range mjconsts.OpCodeData {
		answerKeys[key] = action
	}
	for key, action := range mjconsts.OpCodeAlias {
		answerKeys[key] = action
	}
}

// ParseAction reads the first JSON object in text, e.g. {"丟":"三萬","talk":"..."}.
// Unknown keys are ignored.
func ParseAction(text string) (Action, error) {
	raw := jsonObject.FindString(text)
	if raw == "" {
		return Action{}, fmt.Errorf("%w: no JSON object in %q", consts.ErrorsMalformedResponse, text)
	}
	fields := map[string]interface{}{}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &fields); err != nil {
		return Action{}, fmt.Errorf("%w: %v", consts.ErrorsMalformedResponse, err)
	}

	action := Action{Tile: tile.None, Discard: tile.None}
	var (
		primary []mjconsts.Action
		values  = map[mjconsts.Action]interface{}{}
	)
	for key, value := range fields {
		if strings.EqualFold(key, "talk") {
			if talk, ok := value.(string); ok {
				action.Talk = strings.TrimSpace(talk)
			}
			continue
		}
		kind, ok := answerKeys[strings.ToLower(key)]
		if !ok || !present(value) {
			continue
		}
		values[kind] = value
		if kind != mjconsts.DISCARD {
			primary = append(primary, kind)
		}
	}

	switch {
	case len(primary) > 1:
		return Action{}, fmt.Errorf("%w: more than one action declared", consts.ErrorsMalformedResponse)
	case len(primary) == 0 && values[mjconsts.DISCARD] == nil:
		return Action{}, fmt.Errorf("%w: no action declared", consts.ErrorsMalformedResponse)
	case len(primary) == 0:
		action.Kind = mjconsts.DISCARD
	default:
		action.Kind = primary[0]
	}

	discard, err := tileValue(values[mjconsts.DISCARD])
	if err != nil {
		return Action{}, err
	}
	switch action.Kind {
	case mjconsts.DISCARD:
		if discard == tile.None {
			return Action{}, fmt.Errorf("%w: 丟 needs a tile name", consts.ErrorsMalformedResponse)
		}
		action.Tile = discard
		return action, nil
	case mjconsts.PONG:
		action.Discard = discard
	case mjconsts.CHOW:
		anchor, err := tileValue(values[mjconsts.CHOW])
		if err != nil {
			return Action{}, err
		}
		if anchor == tile.None {
			return Action{}, fmt.Errorf("%w: 吃 needs the lowest tile of the run", consts.ErrorsMalformedResponse)
		}
		action.Tile = anchor
		action.Discard = discard
	case mjconsts.CONCEALED_KONG:
		kind, err := tileValue(values[mjconsts.CONCEALED_KONG])
		if err != nil {
			return Action{}, err
		}
		action.Tile = kind
	}
	if discard != tile.None && action.Kind != mjconsts.PONG && action.Kind != mjconsts.CHOW {
		return Action{}, fmt.Errorf("%w: 丟 cannot be combined with %s", consts.ErrorsMalformedResponse, action.Kind)
	}
	return action, nil
}

func present(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	}
	return true
}

// tileValue reads a tile name; true and absent values yield tile.None.
func tileValue(value interface{}) (tile.Tile, error) {
	switch v := value.(type) {
	case nil, bool:
		return tile.None, nil
	case string:
		return tile.Parse(v)
	}
	return tile.None, fmt.Errorf("%w: expected a tile name, got %v", consts.ErrorsMalformedResponse, value)
}
