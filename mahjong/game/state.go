package game

import (
	"fmt"
	"strings"

	"github.com/ratel-online/mahjong16/mahjong/tile"
)

type StateID int

const (
	_ StateID = iota
	StateDrawing
	StateAwaitingClaims
	StateResolving
	StateDiscarding
	StateTerminal
)

var stateNames = map[StateID]string{
	StateDrawing:        "Drawing",
	StateAwaitingClaims: "AwaitingClaims",
	StateResolving:      "Resolving",
	StateDiscarding:     "Discarding",
	StateTerminal:       "Terminal",
}

func (s StateID) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StateID(%d)", int(s))
}

type OutcomeKind int

const (
	_ OutcomeKind = iota
	OutcomeSelfDrawWin
	OutcomeWin
	// OutcomeExhausted is 流局: the wall ran out with no winner.
	OutcomeExhausted
)

type Outcome struct {
	Kind      OutcomeKind
	Winner    int
	Discarder int
	Tile      tile.Tile
	Hand      []tile.Tile
	Melds     []Meld
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSelfDrawWin:
		return fmt.Sprintf("seat %d 自摸 %s", o.Winner, o.Tile)
	case OutcomeWin:
		return fmt.Sprintf("seat %d 胡 %s from seat %d", o.Winner, o.Tile, o.Discarder)
	case OutcomeExhausted:
		return "流局"
	}
	return "unfinished"
}

// SeatView is the public part of a seat.
type SeatView struct {
	Name     string
	HandSize int
	Melds    []Meld
	Flowers  []tile.Tile
	Discards []tile.Tile
}

// State is the table as seen from one seat.
type State struct {
	Seat            int
	Hand            []tile.Tile
	Drawn           tile.Tile
	Melds           []Meld
	LastDiscard     tile.Tile
	LastDiscardSeat int
	WallRemaining   int
	Seats           []SeatView
}

func (s State) String() string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Wall: %d", s.WallRemaining))
	if s.LastDiscard != tile.None {
		lines = append(lines, fmt.Sprintf("Last discard: %s (%s)", s.LastDiscard, s.Seats[s.LastDiscardSeat].Name))
	}
	for seat, view := range s.Seats {
		status := fmt.Sprintf("%d %s [%d]", seat, view.Name, view.HandSize)
		for _, meld := range view.Melds {
			status += " " + meld.String()
		}
		if len(view.Flowers) > 0 {
			status += " 花:" + tile.ToTileString(view.Flowers)
		}
		status += " 河:" + tile.ToTileString(view.Discards)
		lines = append(lines, status)
	}
	hand := fmt.Sprintf("Your hand: %s", tile.ToTileString(s.Hand))
	if s.Drawn != tile.None {
		hand += fmt.Sprintf(" + %s", s.Drawn)
	}
	lines = append(lines, hand)
	return strings.Join(lines, "\n")
}
