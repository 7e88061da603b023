package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
)

const systemPrompt = "你是一個麻將機器人，請根據我給你的資訊回答我需要的動作。你需要用 JSON 格式回答我，不需要給我你分析的過程，只需要給我 JSON 回應就好。"

// Retry bounds how often a rate-limited call is repeated.
type Retry struct {
	Attempts int
	Backoff  time.Duration
}

// llmPlayer keeps one conversation per seat for the whole game.
type llmPlayer struct {
	basicPlayer
	backend Backend
	retry   Retry
	history []Message
}

func NewLLMPlayer(name string, backend Backend, retry Retry) game.Player {
	return &llmPlayer{
		basicPlayer: basicPlayer{name: name},
		backend:     backend,
		retry:       retry,
		history:     []Message{{Role: RoleSystem, Content: systemPrompt}},
	}
}

func (p *llmPlayer) Decide(ctx context.Context, req game.Request) (game.Action, error) {
	p.history = append(p.history, Message{Role: RoleUser, Content: req.Prompt})
	reply, err := p.complete(ctx)
	if err != nil {
		p.history = p.history[:len(p.history)-1]
		return game.Action{}, err
	}
	p.history = append(p.history, Message{Role: RoleAssistant, Content: reply})
	log.Infof("[llmPlayer.Decide] %s: %s\n", p.name, reply)
	return game.ParseAction(reply)
}

func (p *llmPlayer) complete(ctx context.Context) (string, error) {
	for attempt := 0; ; attempt++ {
		reply, err := p.backend.Complete(ctx, p.history)
		if err == nil {
			return reply, nil
		}
		if !errors.Is(err, consts.ErrorsRateLimited) || attempt >= p.retry.Attempts {
			return "", fmt.Errorf("%w: %s: %v", consts.ErrorsProviderFailure, p.name, err)
		}
		log.Infof("[llmPlayer.complete] %s rate limited, retry %d/%d in %s\n", p.name, attempt+1, p.retry.Attempts, p.retry.Backoff)
		select {
		case <-time.After(p.retry.Backoff):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %s: %v", consts.ErrorsProviderFailure, p.name, ctx.Err())
		}
	}
}
