package player

import (
	"fmt"
	"net/http"
	"os"

	"github.com/ratel-online/mahjong16/config"
	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
)

// CreatePlayers builds the local seats of cfg. Remote seats are filled by the server,
// so they are rejected here.
func CreatePlayers(cfg *config.Config) ([]game.Player, error) {
	players := make([]game.Player, 0, len(cfg.Seats))
	for _, seat := range cfg.Seats {
		p, err := CreatePlayer(seat, cfg.LLM)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func CreatePlayer(seat config.SeatConf, llm config.LLMConf) (game.Player, error) {
	switch seat.Kind {
	case consts.SeatHuman:
		return NewHumanPlayer(seat.Name), nil
	case consts.SeatNaive:
		return NewNaivePlayer(seat.Name), nil
	case consts.SeatGood:
		return NewGoodPlayer(seat.Name), nil
	case consts.SeatLLM:
		backend, err := NewBackend(llm)
		if err != nil {
			return nil, err
		}
		return NewLLMPlayer(seat.Name, backend, Retry{Attempts: llm.Retries, Backoff: llm.Backoff}), nil
	case consts.SeatRemote:
		return nil, fmt.Errorf("%w: seat %s is remote, start the server to fill it", consts.ErrorsTableInvalid, seat.Name)
	}
	return nil, fmt.Errorf("%w: unknown seat kind %q", consts.ErrorsTableInvalid, seat.Kind)
}

func NewBackend(cfg config.LLMConf) (Backend, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	apiKey := ""
	if cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
	}
	switch cfg.Backend {
	case config.BackendGemini:
		url := cfg.URL
		if url == "" {
			url = GeminiURL
		}
		return GeminiBackend{Client: client, URL: url, Model: cfg.Model, APIKey: apiKey}, nil
	case config.BackendOpenAI:
		url := cfg.URL
		if url == "" {
			url = OpenAIURL
		}
		return OpenAIBackend{Client: client, URL: url, Model: cfg.Model, APIKey: apiKey}, nil
	}
	return nil, fmt.Errorf("unknown llm backend %q", cfg.Backend)
}
