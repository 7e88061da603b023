package game

import (
	"sort"

	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
)

// Claim is one seat's set of options on the current discard.
type Claim struct {
	Seat    int
	Options []ActionSpec
}

// Priority is the best priority among the claim's options.
func (c Claim) Priority() mjconsts.Priority {
	best := mjconsts.PriorityNone
	for _, option := range c.Options {
		if p := option.Kind.Priority(); p < best {
			best = p
		}
	}
	return best
}

// SortClaims orders claims Win > Kong > Pong > Chow; equal priorities go to the seat
// that plays sooner after the discarder.
func SortClaims(claims []Claim, discarder int, cycler *Cycler) {
	sort.SliceStable(claims, func(i, j int) bool {
		pi, pj := claims[i].Priority(), claims[j].Priority()
		if pi != pj {
			return pi < pj
		}
		return cycler.Distance(discarder, claims[i].Seat) < cycler.Distance(discarder, claims[j].Seat)
	})
}
