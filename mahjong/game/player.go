package game

import (
	"context"
	"time"

	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
)

// Request is what a seat is asked on each decision.
type Request struct {
	Seat    int
	Prompt  string
	Allowed []ActionSpec
	State   State
	// Notice explains why the previous answer was rejected.
	Notice string
}

func (r Request) Allows(kind mjconsts.Action) (ActionSpec, bool) {
	for _, spec := range r.Allowed {
		if spec.Kind == kind {
			return spec, true
		}
	}
	return ActionSpec{}, false
}

// Player makes the decisions for one seat. Decide may block until ctx is done.
type Player interface {
	NickName() string
	Decide(ctx context.Context, req Request) (Action, error)
}

// Timed is implemented by players that bring their own decision timeout. When ok is
// true, d replaces Rules.DecisionTimeout for that seat; zero waits forever.
type Timed interface {
	DecisionTimeout() (d time.Duration, ok bool)
}
