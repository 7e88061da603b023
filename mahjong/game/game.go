package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/ratel-online/mahjong16/consts"
	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/event"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
	"github.com/ratel-online/mahjong16/mahjong/win"
)

type Rules struct {
	WithFlowers bool
	// DecisionTimeout bounds each provider call; zero waits forever.
	DecisionTimeout time.Duration
	// MaxAttempts caps re-prompts of one decision; zero re-prompts forever.
	MaxAttempts int
}

func DefaultRules() Rules {
	return Rules{DecisionTimeout: consts.DecisionTimeout, MaxAttempts: 5}
}

type Option func(*Game)

func WithDeck(deck *Deck) Option {
	return func(g *Game) { g.deck = deck }
}

func WithRules(rules Rules) Option {
	return func(g *Game) { g.rules = rules }
}

func WithChecker(checker WinChecker) Option {
	return func(g *Game) { g.checker = checker }
}

func WithListener(listener event.Listener) Option {
	return func(g *Game) { g.listeners = append(g.listeners, listener) }
}

type transition func(ctx context.Context) error

type acceptedClaim struct {
	seat   int
	action Action
}

// Game is the turn engine for one hand. It is driven by a single goroutine.
type Game struct {
	players   *PlayerIterator
	deck      *Deck
	log       *event.Log
	checker   WinChecker
	rules     Rules
	listeners []event.Listener

	state           StateID
	dealt           bool
	lastDiscard     tile.Tile
	lastDiscardSeat int
	pending         []Claim
	accepted        *acceptedClaim
	outcome         *Outcome

	transitions map[StateID]transition
}

func New(players []Player, opts ...Option) (*Game, error) {
	if len(players) != consts.Players {
		return nil, fmt.Errorf("%w: %d players, want %d", consts.ErrorsInvariantViolation, len(players), consts.Players)
	}
	g := &Game{
		players:         newPlayerIterator(players),
		rules:           DefaultRules(),
		state:           StateDrawing,
		lastDiscard:     tile.None,
		lastDiscardSeat: -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.deck == nil {
		g.deck = NewDeck(nil, g.rules.WithFlowers)
	}
	if g.checker == nil {
		evaluator, err := win.NewEvaluator(win.Exhaustive, 0)
		if err != nil {
			return nil, err
		}
		g.checker = evaluator
	}
	g.log = event.NewLog(g.players.Names())
	for _, listener := range g.listeners {
		g.log.AddListener(listener)
	}
	g.transitions = map[StateID]transition{
		StateDrawing:        g.draw,
		StateAwaitingClaims: g.awaitClaims,
		StateResolving:      g.resolve,
		StateDiscarding:     g.discardOnly,
	}
	return g, nil
}

func (g *Game) Players() *PlayerIterator {
	return g.players
}

func (g *Game) Deck() *Deck {
	return g.deck
}

func (g *Game) Log() *event.Log {
	return g.log
}

func (g *Game) State() StateID {
	return g.state
}

// Current is the seat whose turn it is, or the claimant being resolved.
func (g *Game) Current() int {
	return g.players.Cycler().Current()
}

func (g *Game) Pending() []Claim {
	return append([]Claim{}, g.pending...)
}

func (g *Game) LastDiscard() (tile.Tile, int) {
	return g.lastDiscard, g.lastDiscardSeat
}

func (g *Game) Outcome() (Outcome, bool) {
	if g.outcome == nil {
		return Outcome{}, false
	}
	return *g.outcome, true
}

// Deal gives every seat its starting hand and replaces dealt flowers. Seat 0 draws first.
func (g *Game) Deal() error {
	if g.dealt {
		return fmt.Errorf("%w: already dealt", consts.ErrorsInvariantViolation)
	}
	hands, flowers, err := g.deck.Deal(g.players.Len(), consts.HandSize)
	if err != nil {
		return err
	}
	g.players.ForEach(func(p *playerController) {
		p.AddTiles(hands[p.seat]...)
		for _, flower := range flowers[p.seat] {
			p.AddFlower(flower)
		}
		if len(flowers[p.seat]) > 0 {
			g.log.Emit(p.seat, "%s補花%s", event.Seat(p.seat), tile.ToTileString(flowers[p.seat]))
		}
	})
	g.dealt = true
	g.players.Set(0)
	g.state = StateDrawing
	log.Infof("[Game.Deal] dealt, wall remaining %d\n", g.deck.Remaining())
	return g.checkInvariants()
}

// Step performs exactly one state transition.
func (g *Game) Step(ctx context.Context) error {
	if g.state == StateTerminal {
		return consts.ErrorsGameOver
	}
	if !g.dealt {
		return fmt.Errorf("%w: not dealt", consts.ErrorsInvariantViolation)
	}
	from := g.state
	if err := g.transitions[g.state](ctx); err != nil {
		return err
	}
	log.Infof("[Game.Step] %s -> %s, seat %d\n", from, g.state, g.Current())
	return g.checkInvariants()
}

// Run deals when needed and steps until the game ends.
func (g *Game) Run(ctx context.Context) (Outcome, error) {
	if !g.dealt {
		if err := g.Deal(); err != nil {
			return Outcome{}, err
		}
	}
	for g.state != StateTerminal {
		if err := g.Step(ctx); err != nil {
			return Outcome{}, err
		}
	}
	return *g.outcome, nil
}

func (g *Game) draw(ctx context.Context) error {
	p := g.players.Current()
	drawn, err := g.drawFor(p)
	if err != nil {
		return err
	}
	if drawn == tile.None {
		g.finish(Outcome{Kind: OutcomeExhausted, Winner: -1, Discarder: -1, Tile: tile.None})
		return nil
	}
	p.SetDrawn(drawn)

	specs := SelfDrawActions(p.Hand(), drawn, g.checker)
	action, err := g.decide(ctx, p, specs)
	if err != nil {
		return err
	}
	switch action.Kind {
	case mjconsts.DISCARD:
		return g.discard(p, action.Tile)
	case mjconsts.CONCEALED_KONG:
		if _, err := p.ConcealedKong(action.Tile); err != nil {
			return err
		}
		// no claim window; the next step draws the replacement tile
		g.log.Emit(p.seat, "%s暗槓", event.Seat(p.seat))
		return nil
	case mjconsts.SELF_DRAW_WIN:
		g.finish(Outcome{
			Kind:      OutcomeSelfDrawWin,
			Winner:    p.seat,
			Discarder: -1,
			Tile:      drawn,
			Hand:      p.Tiles(),
			Melds:     p.Melds(),
		})
		return nil
	}
	return fmt.Errorf("%w: unexpected %s on own turn", consts.ErrorsInvariantViolation, action.Kind)
}

// drawFor draws for p, moving flowers to the door. tile.None means the wall is empty.
func (g *Game) drawFor(p *playerController) (tile.Tile, error) {
	for !g.deck.NoTiles() {
		t, err := g.deck.DrawOne()
		if err != nil {
			return tile.None, err
		}
		if !t.IsFlower() {
			return t, nil
		}
		p.AddFlower(t)
		g.log.Emit(p.seat, "%s補花%s", event.Seat(p.seat), t)
	}
	return tile.None, nil
}

func (g *Game) discard(p *playerController, kind tile.Tile) error {
	discarded, err := p.Discard(kind)
	if err != nil {
		return err
	}
	g.log.Emit(p.seat, "%s打出了%s", event.Seat(p.seat), discarded)
	g.lastDiscard = discarded
	g.lastDiscardSeat = p.seat
	g.pending = g.collectClaims(p.seat, discarded)
	g.state = StateAwaitingClaims
	return nil
}

func (g *Game) collectClaims(discarder int, discarded tile.Tile) []Claim {
	claims := make([]Claim, 0, 3)
	next := g.players.Cycler().After(discarder, 1)
	for _, other := range g.players.Others(discarder) {
		options := ClaimActions(other.Hand(), discarded, other.seat == next, g.checker)
		if len(options) > 0 {
			claims = append(claims, Claim{Seat: other.seat, Options: options})
		}
	}
	SortClaims(claims, discarder, g.players.Cycler())
	return claims
}

func (g *Game) awaitClaims(ctx context.Context) error {
	if len(g.pending) == 0 {
		g.players.Set(g.players.Cycler().After(g.lastDiscardSeat, 1))
		g.state = StateDrawing
		return nil
	}
	claim := g.pending[0]
	g.pending = g.pending[1:]
	p := g.players.Set(claim.Seat)

	specs := append(append([]ActionSpec{}, claim.Options...), ActionSpec{Kind: mjconsts.PASS})
	action, err := g.decide(ctx, p, specs)
	if err != nil {
		return err
	}
	if action.Kind == mjconsts.PASS {
		return nil
	}
	g.accepted = &acceptedClaim{seat: claim.Seat, action: action}
	g.state = StateResolving
	return nil
}

func (g *Game) resolve(_ context.Context) error {
	claim := g.accepted
	g.accepted = nil
	if claim == nil {
		return fmt.Errorf("%w: nothing to resolve", consts.ErrorsInvariantViolation)
	}
	g.pending = nil
	p := g.players.Set(claim.seat)
	discarded := g.lastDiscard
	kind := discarded.Kind()

	switch claim.action.Kind {
	case mjconsts.WIN:
		g.players.Get(g.lastDiscardSeat).Pile().TakeTop()
		g.log.Emit(p.seat, "%s胡了%s", event.Seat(p.seat), discarded)
		g.finish(Outcome{
			Kind:      OutcomeWin,
			Winner:    p.seat,
			Discarder: g.lastDiscardSeat,
			Tile:      discarded,
			Hand:      append(p.Hand(), discarded),
			Melds:     p.Melds(),
		})
		return nil
	case mjconsts.KONG:
		if _, err := p.Claim(mjconsts.MELD_KONG, g.takeDiscard(), g.lastDiscardSeat, util.Repeat(kind, 3)); err != nil {
			return err
		}
		g.log.Emit(p.seat, "%s槓了%s", event.Seat(p.seat), discarded)
		g.state = StateDrawing
		return nil
	case mjconsts.PONG:
		if _, err := p.Claim(mjconsts.MELD_PONG, g.takeDiscard(), g.lastDiscardSeat, util.Repeat(kind, 2)); err != nil {
			return err
		}
		g.log.Emit(p.seat, "%s碰了%s", event.Seat(p.seat), discarded)
	case mjconsts.CHOW:
		needed := ChowTiles(p.Hand(), claim.action.Tile, discarded)
		if needed == nil {
			return fmt.Errorf("%w: chow from %s no longer possible", consts.ErrorsInvariantViolation, claim.action.Tile)
		}
		meld, err := p.Claim(mjconsts.MELD_CHOW, g.takeDiscard(), g.lastDiscardSeat, needed)
		if err != nil {
			return err
		}
		g.log.Emit(p.seat, "%s吃了%s", event.Seat(p.seat), tile.ToTileString(meld.Tiles()))
	default:
		return fmt.Errorf("%w: cannot resolve %s", consts.ErrorsInvariantViolation, claim.action.Kind)
	}

	if claim.action.Discard != tile.None {
		return g.discard(p, claim.action.Discard)
	}
	g.state = StateDiscarding
	return nil
}

func (g *Game) takeDiscard() tile.Tile {
	return g.players.Get(g.lastDiscardSeat).Pile().TakeTop()
}

func (g *Game) discardOnly(ctx context.Context) error {
	p := g.players.Current()
	specs := SelfDrawActions(p.Hand(), tile.None, g.checker)
	action, err := g.decide(ctx, p, specs)
	if err != nil {
		return err
	}
	return g.discard(p, action.Tile)
}

func (g *Game) finish(outcome Outcome) {
	g.outcome = &outcome
	g.pending = nil
	g.state = StateTerminal
	if outcome.Kind == OutcomeExhausted {
		g.log.Emit(event.TableSeat, "流局")
	}
	log.Infof("[Game.finish] %s\n", outcome)
}

// decide asks p until it answers with one of specs. Rejected answers are explained in
// the next request; fatal errors end the game.
func (g *Game) decide(ctx context.Context, p *playerController, specs []ActionSpec) (Action, error) {
	notice := ""
	for attempt := 1; ; attempt++ {
		req := Request{
			Seat:    p.seat,
			Allowed: specs,
			State:   g.Snapshot(p.seat),
			Notice:  notice,
		}
		req.Prompt = buildPrompt(p, g.log.Unseen(p.seat), specs, notice)

		action, err := g.ask(ctx, p, req)
		if err == nil {
			action, err = g.validate(p, specs, action)
		}
		if err == nil {
			if action.Talk != "" {
				// talk is free text, it must not render as a seat placeholder
				g.log.Emit(p.seat, "%s說：「%s」", event.Seat(p.seat), strings.ReplaceAll(action.Talk, "$", "＄"))
			}
			return action, nil
		}
		if consts.IsFatal(err) {
			return Action{}, providerFailure(p, err)
		}
		log.Infof("[Game.decide] seat %d answer rejected (attempt %d): %v\n", p.seat, attempt, err)
		if g.rules.MaxAttempts > 0 && attempt >= g.rules.MaxAttempts {
			return Action{}, fmt.Errorf("%w: %s gave %d invalid answers, last: %v", consts.ErrorsProviderFailure, p.Name(), attempt, err)
		}
		notice = err.Error()
	}
}

type answer struct {
	action Action
	err    error
}

// ask runs the provider call under the decision timeout. A provider that ignores ctx
// is abandoned when the timeout fires.
func (g *Game) ask(ctx context.Context, p *playerController, req Request) (Action, error) {
	timeout := g.rules.DecisionTimeout
	if timed, ok := p.player.(Timed); ok {
		if d, own := timed.DecisionTimeout(); own {
			timeout = d
		}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	answers := make(chan answer, 1)
	async.Async(func() {
		defer func() {
			if r := recover(); r != nil {
				answers <- answer{err: fmt.Errorf("%w: panic: %v", consts.ErrorsProviderFailure, r)}
			}
		}()
		action, err := p.player.Decide(ctx, req)
		answers <- answer{action: action, err: err}
	})
	select {
	case a := <-answers:
		if a.err != nil && ctx.Err() != nil {
			return Action{}, fmt.Errorf("%w: %v", consts.ErrorsProviderFailure, ctx.Err())
		}
		return a.action, a.err
	case <-ctx.Done():
		return Action{}, fmt.Errorf("%w: %s: %v", consts.ErrorsProviderFailure, p.Name(), ctx.Err())
	}
}

func providerFailure(p *playerController, err error) error {
	if errors.Is(err, consts.ErrorsProviderFailure) || errors.Is(err, consts.ErrorsInvariantViolation) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", consts.ErrorsProviderFailure, p.Name(), err)
}

// validate checks action against specs and the seat's tiles and fills in defaults.
func (g *Game) validate(p *playerController, specs []ActionSpec, action Action) (Action, error) {
	var spec *ActionSpec
	for i := range specs {
		if specs[i].Kind == action.Kind {
			spec = &specs[i]
			break
		}
	}
	if spec == nil {
		return Action{}, illegal("現在不能%s", action.Kind)
	}
	switch action.Kind {
	case mjconsts.DISCARD:
		if !util.ContainsKind(p.Tiles(), action.Tile) {
			return Action{}, illegal("你沒有%s這張牌", action.Tile)
		}
	case mjconsts.CONCEALED_KONG:
		if action.Tile == tile.None {
			if len(spec.Tiles) != 1 {
				return Action{}, illegal("請指定要暗槓的牌")
			}
			action.Tile = spec.Tiles[0]
		}
		if !util.ContainsKind(spec.Tiles, action.Tile) {
			return Action{}, illegal("不能暗槓%s", action.Tile)
		}
	case mjconsts.PONG:
		if err := g.validateClaimDiscard(p, action.Discard, util.Repeat(g.lastDiscard.Kind(), 2)); err != nil {
			return Action{}, err
		}
	case mjconsts.CHOW:
		if !util.ContainsKind(spec.Tiles, action.Tile) {
			return Action{}, illegal("不能從%s開始吃", action.Tile)
		}
		if err := g.validateClaimDiscard(p, action.Discard, ChowTiles(p.Hand(), action.Tile, g.lastDiscard)); err != nil {
			return Action{}, err
		}
	}
	return action, nil
}

// validateClaimDiscard checks that discard is still in hand once the meld tiles are gone.
func (g *Game) validateClaimDiscard(p *playerController, discard tile.Tile, meld []tile.Tile) error {
	if discard == tile.None {
		return nil
	}
	remaining, _, err := util.RemoveKinds(p.Hand(), meld...)
	if err != nil {
		return err
	}
	if !util.ContainsKind(remaining, discard) {
		return illegal("吃碰之後你沒有%s可以丟", discard)
	}
	return nil
}

// Snapshot is the table as seen by seat.
func (g *Game) Snapshot(seat int) State {
	p := g.players.Get(seat)
	views := make([]SeatView, 0, g.players.Len())
	g.players.ForEach(func(other *playerController) {
		views = append(views, SeatView{
			Name:     other.Name(),
			HandSize: len(other.Tiles()),
			Melds:    other.Melds(),
			Flowers:  other.Flowers(),
			Discards: other.Pile().Tiles(),
		})
	})
	return State{
		Seat:            seat,
		Hand:            p.Hand(),
		Drawn:           p.Drawn(),
		Melds:           p.Melds(),
		LastDiscard:     g.lastDiscard,
		LastDiscardSeat: g.lastDiscardSeat,
		WallRemaining:   g.deck.Remaining(),
		Seats:           views,
	}
}

func (g *Game) checkInvariants() error {
	if g.state == StateTerminal {
		return nil
	}
	var err error
	g.players.ForEach(func(p *playerController) {
		expected := consts.HandSize
		if g.state == StateDiscarding && p.seat == g.Current() {
			expected++
		}
		if units := p.Units(); units != expected && err == nil {
			err = fmt.Errorf("%w: seat %d holds %d units, want %d", consts.ErrorsInvariantViolation, p.seat, units, expected)
		}
	})
	if err != nil {
		log.Error(err)
	}
	return err
}

func illegal(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", consts.ErrorsIllegalAction, fmt.Sprintf(format, args...))
}
