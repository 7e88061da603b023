package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/ratel-online/mahjong16/config"
	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/player"
	"github.com/ratel-online/mahjong16/mahjong/transcript"
	"github.com/ratel-online/mahjong16/mahjong/ui"
	"github.com/ratel-online/mahjong16/network"
	"github.com/ratel-online/mahjong16/service"
	"github.com/spf13/cobra"
)

var (
	configFile string
	seed       int64
	flowers    bool
	greedy     bool
)

var rootCmd = &cobra.Command{
	Use:   "mahjong16",
	Short: "台灣十六張麻將",
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "在終端機打一局",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Game.Seed = seed
		}
		if cmd.Flags().Changed("flowers") {
			cfg.Game.Flowers = flowers
		}
		if greedy {
			cfg.Game.WinCheck = consts.WinCheckGreedy
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return play(ctx, cfg)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "啟動 websocket 牌桌服務",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		s := service.New(cfg)
		defer s.Close()
		async.Async(func() {
			s.Sweep(time.Minute)
		})
		return network.NewWebsocketServer(cfg.Server.Addr, s).Serve()
	},
}

func play(ctx context.Context, cfg *config.Config) error {
	ui.Message.Welcome()
	players, err := player.CreatePlayers(cfg)
	if err != nil {
		return err
	}
	observer := ui.NewObserver()
	opts := []game.Option{game.WithListener(observer)}
	var writer *transcript.Writer
	if cfg.Transcript.Dir != "" {
		writer, err = transcript.Open(cfg.Transcript.Dir, "")
		if err != nil {
			return err
		}
		defer writer.Close()
		for i, p := range players {
			players[i] = writer.Wrap(p)
		}
		opts = append(opts, game.WithListener(writer))
	}
	g, release, err := service.NewGame(cfg.Game, players, opts...)
	if err != nil {
		return err
	}
	defer release()
	outcome, err := g.Run(ctx)
	if err != nil {
		return err
	}
	if writer != nil {
		writer.Outcome(outcome, g.Players().Names())
	}
	ui.Message.GameOver(outcome, g.Players().Names())
	observer.ShowHands(g)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	playCmd.Flags().Int64Var(&seed, "seed", 0, "wall shuffle seed, 0 uses the clock")
	playCmd.Flags().BoolVar(&flowers, "flowers", false, "play with the eight flower tiles")
	playCmd.Flags().BoolVar(&greedy, "greedy", false, "use the greedy win check")
	rootCmd.AddCommand(playCmd, serveCmd)
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Println("main", err)
			async.PrintStackTrace(err)
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
