package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/ratel-online/mahjong16/config"
	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/player"
	"github.com/ratel-online/mahjong16/mahjong/transcript"
	"github.com/ratel-online/mahjong16/mahjong/win"
)

// NewGame builds a game from the table settings. The returned func releases the win
// check cache once the game is over.
func NewGame(cfg config.GameConf, players []game.Player, opts ...game.Option) (*game.Game, func(), error) {
	strategy, err := win.StrategyByName(cfg.WinCheck)
	if err != nil {
		return nil, nil, err
	}
	evaluator, err := win.NewEvaluator(strategy, cfg.WinCacheSize)
	if err != nil {
		return nil, nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rules := game.Rules{WithFlowers: cfg.Flowers, DecisionTimeout: cfg.DecisionTimeout, MaxAttempts: cfg.MaxAttempts}
	opts = append([]game.Option{
		game.WithDeck(game.NewDeck(rand.New(rand.NewSource(seed)), cfg.Flowers)),
		game.WithRules(rules),
		game.WithChecker(evaluator),
	}, opts...)
	g, err := game.New(players, opts...)
	if err != nil {
		evaluator.Close()
		return nil, nil, err
	}
	log.Infof("[service.NewGame] seed %d, win check %s, flowers %v\n", seed, strategy, cfg.Flowers)
	return g, evaluator.Close, nil
}

// Service seats remote players at tables and runs each table's game in its own
// goroutine.
type Service struct {
	cfg    *config.Config
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	forming *Table
}

func New(cfg *config.Config) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{cfg: cfg, ctx: ctx, cancel: cancel}
}

// Close stops every running game.
func (s *Service) Close() {
	s.cancel()
}

// Join seats a remote player at the forming table. The table starts once every remote
// seat is taken, or when the fill timeout passes.
func (s *Service) Join(name string, conn player.Conn) (*Table, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := s.forming
	if table == nil {
		if !s.hasRemoteSeats() {
			return nil, -1, fmt.Errorf("%w: no seat takes remote players", consts.ErrorsTableInvalid)
		}
		table = createTable(s.cfg.Seats)
		s.forming = table
		log.Infof("[Service.Join] table %s created\n", table.ID)
		async.Async(func() {
			s.fillAfter(table, s.cfg.Server.FillTimeout)
		})
	}

	table.Lock()
	seat := table.openSeat()
	if name == "" {
		name = table.seats[seat].Name
	}
	remote := player.NewRemotePlayer(name, conn)
	table.seats[seat].Name = name
	table.players[seat] = remote
	table.remotes[seat] = remote
	table.ActiveTime = time.Now()
	full := table.openSeat() < 0
	table.Unlock()

	log.Infof("[Service.Join] %s seated at %d on table %s\n", name, seat, table.ID)
	if err := remote.Send(player.Packet{Type: player.PacketWelcome, Seat: seat, Text: fmt.Sprintf("%s 你好，你坐在 %d 號位，桌號 %s", name, seat, table.ID)}); err != nil {
		log.Error(err)
	}
	if full {
		s.forming = nil
		s.start(table)
	}
	return table, seat, nil
}

// Sweep drops finished tables older than the table TTL every interval, until the
// service is closed.
func (s *Service) Sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			Cleanup(s.cfg.Server.TableTTL)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Service) hasRemoteSeats() bool {
	for _, seat := range s.cfg.Seats {
		if waitsForRemote(seat) {
			return true
		}
	}
	return false
}

func (s *Service) fillAfter(table *Table, timeout time.Duration) {
	select {
	case <-time.After(timeout):
	case <-table.ready:
		return
	case <-s.ctx.Done():
		return
	}
	s.mu.Lock()
	if s.forming == table {
		s.forming = nil
	}
	s.mu.Unlock()
	log.Infof("[Service.fillAfter] table %s filled with %s bots\n", table.ID, s.cfg.Server.FillKind)
	s.start(table)
}

// start seats bots in the empty seats and launches the game. Only the first call has
// any effect.
func (s *Service) start(table *Table) {
	table.Lock()
	if table.State != consts.TableStateWaiting {
		table.Unlock()
		return
	}
	table.State = consts.TableStateRunning
	close(table.ready)
	for seat, conf := range table.seats {
		if table.players[seat] != nil {
			continue
		}
		if waitsForRemote(conf) {
			conf.Kind = s.cfg.Server.FillKind
		}
		p, err := player.CreatePlayer(conf, s.cfg.LLM)
		if err != nil {
			table.Unlock()
			s.finish(table, nil, err)
			return
		}
		table.players[seat] = p
	}
	players := append([]game.Player{}, table.players...)
	table.Unlock()

	async.Async(func() {
		outcome, err := s.run(table, players)
		s.finish(table, outcome, err)
	})
}

func (s *Service) run(table *Table, players []game.Player) (*game.Outcome, error) {
	var (
		opts   []game.Option
		writer *transcript.Writer
	)
	if dir := s.cfg.Transcript.Dir; dir != "" {
		w, err := transcript.Open(dir, table.ID)
		if err != nil {
			log.Error(err)
		} else {
			writer = w
			defer w.Close()
			for i, p := range players {
				players[i] = w.Wrap(p)
			}
			opts = append(opts, game.WithListener(w))
		}
	}
	g, release, err := NewGame(s.cfg.Game, players, opts...)
	if err != nil {
		return nil, err
	}
	defer release()
	outcome, err := g.Run(s.ctx)
	if err != nil {
		return nil, err
	}
	if writer != nil {
		writer.Outcome(outcome, g.Players().Names())
	}
	return &outcome, nil
}

func (s *Service) finish(table *Table, outcome *game.Outcome, err error) {
	table.Lock()
	table.outcome = outcome
	table.err = err
	table.State = consts.TableStateFinished
	table.ActiveTime = time.Now()
	names := make([]string, 0, len(table.seats))
	for _, seat := range table.seats {
		names = append(names, seat.Name)
	}
	remotes := make([]*player.RemotePlayer, 0, len(table.remotes))
	for _, remote := range table.remotes {
		remotes = append(remotes, remote)
	}
	table.Unlock()

	text := describe(outcome, err, names)
	if err != nil {
		log.Errorf("[Service.finish] table %s: %v\n", table.ID, err)
	} else {
		log.Infof("[Service.finish] table %s: %s\n", table.ID, text)
	}
	for _, remote := range remotes {
		packetType := player.PacketOutcome
		if err != nil {
			packetType = player.PacketError
		}
		if sendErr := remote.Send(player.Packet{Type: packetType, Seat: -1, Text: text}); sendErr != nil {
			log.Error(sendErr)
		}
		_ = remote.Close()
	}
	close(table.done)
}

func describe(outcome *game.Outcome, err error, names []string) string {
	switch {
	case err != nil:
		return err.Error()
	case outcome == nil:
		return "unfinished"
	case outcome.Kind == game.OutcomeSelfDrawWin:
		return fmt.Sprintf("%s 自摸 %s", names[outcome.Winner], outcome.Tile)
	case outcome.Kind == game.OutcomeWin:
		return fmt.Sprintf("%s 胡了 %s 打出的 %s", names[outcome.Winner], names[outcome.Discarder], outcome.Tile)
	}
	return "流局"
}
