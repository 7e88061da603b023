package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ratel-online/mahjong16/consts"
	"github.com/spf13/viper"
)

const EnvPrefix = "MAHJONG"

type Config struct {
	Game       GameConf       `mapstructure:"game"`
	Seats      []SeatConf     `mapstructure:"seats"`
	LLM        LLMConf        `mapstructure:"llm"`
	Server     ServerConf     `mapstructure:"server"`
	Transcript TranscriptConf `mapstructure:"transcript"`
}

type GameConf struct {
	// Seed shuffles the wall; zero uses the clock.
	Seed            int64         `mapstructure:"seed"`
	Flowers         bool          `mapstructure:"flowers"`
	WinCheck        string        `mapstructure:"winCheck"`
	WinCacheSize    int64         `mapstructure:"winCacheSize"`
	DecisionTimeout time.Duration `mapstructure:"decisionTimeout"`
	MaxAttempts     int           `mapstructure:"maxAttempts"`
}

type SeatConf struct {
	Name string `mapstructure:"name"`
	Kind string `mapstructure:"kind"`
}

type LLMConf struct {
	Backend   string        `mapstructure:"backend"`
	URL       string        `mapstructure:"url"`
	Model     string        `mapstructure:"model"`
	APIKeyEnv string        `mapstructure:"apiKeyEnv"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
	Backoff   time.Duration `mapstructure:"backoff"`
}

type ServerConf struct {
	Addr        string        `mapstructure:"addr"`
	FillTimeout time.Duration `mapstructure:"fillTimeout"`
	// FillKind is the bot kind seated in place of missing remote players.
	FillKind string `mapstructure:"fillKind"`
	// TableTTL is how long a finished table stays listed.
	TableTTL time.Duration `mapstructure:"tableTTL"`
}

type TranscriptConf struct {
	// Dir receives one JSON lines file per game; empty disables transcripts.
	Dir string `mapstructure:"dir"`
}

const (
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.flowers", false)
	v.SetDefault("game.winCheck", consts.WinCheckExhaustive)
	v.SetDefault("game.winCacheSize", 1<<16)
	v.SetDefault("game.decisionTimeout", consts.DecisionTimeout)
	v.SetDefault("game.maxAttempts", 5)

	seats := make([]map[string]interface{}, 0, consts.Players)
	for i, name := range consts.DefaultPlayerNames {
		kind := consts.SeatGood
		if i == 0 {
			kind = consts.SeatHuman
		}
		seats = append(seats, map[string]interface{}{"name": name, "kind": kind})
	}
	v.SetDefault("seats", seats)

	v.SetDefault("llm.backend", BackendGemini)
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.apiKeyEnv", "GEMINI_API_KEY")
	v.SetDefault("llm.timeout", 50*time.Second)
	v.SetDefault("llm.retries", 3)
	v.SetDefault("llm.backoff", 30*time.Second)

	v.SetDefault("server.addr", ":9998")
	v.SetDefault("server.fillTimeout", consts.FillTimeout)
	v.SetDefault("server.fillKind", consts.SeatGood)
	v.SetDefault("server.tableTTL", consts.TableTTL)

	v.SetDefault("transcript.dir", "")
}

// Load reads file (optional) over the defaults. Environment variables such as
// MAHJONG_GAME_SEED override both.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Seats) != consts.Players {
		return fmt.Errorf("config: %d seats, want %d", len(c.Seats), consts.Players)
	}
	for i, seat := range c.Seats {
		if strings.TrimSpace(seat.Name) == "" {
			return fmt.Errorf("config: seat %d has no name", i)
		}
		if !validSeatKind(seat.Kind) {
			return fmt.Errorf("config: seat %d has unknown kind %q", i, seat.Kind)
		}
	}
	switch c.Game.WinCheck {
	case consts.WinCheckExhaustive, consts.WinCheckGreedy:
	default:
		return fmt.Errorf("config: unknown win check %q", c.Game.WinCheck)
	}
	switch c.LLM.Backend {
	case BackendGemini, BackendOpenAI:
	default:
		return fmt.Errorf("config: unknown llm backend %q", c.LLM.Backend)
	}
	if c.Server.FillKind == consts.SeatRemote || c.Server.FillKind == consts.SeatHuman || !validSeatKind(c.Server.FillKind) {
		return fmt.Errorf("config: cannot fill seats with %q", c.Server.FillKind)
	}
	return nil
}

func validSeatKind(kind string) bool {
	switch kind {
	case consts.SeatHuman, consts.SeatNaive, consts.SeatGood, consts.SeatLLM, consts.SeatRemote:
		return true
	}
	return false
}
