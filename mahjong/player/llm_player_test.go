package player_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/player"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// chatServer answers each request with the next reply; status 0 means 200.
type chatServer struct {
	mu       sync.Mutex
	replies  []reply
	requests []map[string]interface{}
	paths    []string
	headers  []http.Header
}

type reply struct {
	status int
	body   string
}

func (s *chatServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body := map[string]interface{}{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.requests = append(s.requests, body)
	s.paths = append(s.paths, r.URL.RequestURI())
	s.headers = append(s.headers, r.Header.Clone())

	next := reply{status: http.StatusInternalServerError, body: `{}`}
	if len(s.replies) > 0 {
		next, s.replies = s.replies[0], s.replies[1:]
	}
	if next.status != 0 {
		w.WriteHeader(next.status)
	}
	_, _ = w.Write([]byte(next.body))
}

func openAIReply(content string) reply {
	data, _ := json.Marshal(map[string]interface{}{
		"choices": []interface{}{map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": content},
		}},
	})
	return reply{body: string(data)}
}

func geminiReply(text string) reply {
	data, _ := json.Marshal(map[string]interface{}{
		"candidates": []interface{}{map[string]interface{}{
			"content": map[string]interface{}{"role": "model", "parts": []interface{}{map[string]string{"text": text}}},
		}},
	})
	return reply{body: string(data)}
}

var rateLimited = reply{
	status: http.StatusTooManyRequests,
	body:   `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`,
}

func TestLLMPlayer(t *testing.T) {
	ctx := context.Background()
	noRetry := player.Retry{}

	t.Run("openai_keeps_the_conversation", func(t *testing.T) {
		server := &chatServer{replies: []reply{
			openAIReply("好的\n{\"丟\":\"三萬\",\"talk\":\"聽牌了\"}"),
			openAIReply(`{"放棄":true}`),
		}}
		ts := httptest.NewServer(server)
		defer ts.Close()

		backend := player.OpenAIBackend{URL: ts.URL, Model: "deepseek-chat", APIKey: "secret"}
		p := player.NewLLMPlayer("白素貞", backend, noRetry)

		action, err := p.Decide(ctx, game.Request{Prompt: "第一題"})
		require.NoError(t, err)
		require.Equal(t, game.DiscardAction(one(t, "三萬")).WithTalk("聽牌了"), action)

		action, err = p.Decide(ctx, game.Request{Prompt: "第二題"})
		require.NoError(t, err)
		require.Equal(t, game.PassAction(), action)

		require.Equal(t, "/chat/completions", server.paths[0])
		require.Equal(t, "Bearer secret", server.headers[0].Get("Authorization"))
		require.Equal(t, "deepseek-chat", server.requests[0]["model"])
		messages := server.requests[1]["messages"].([]interface{})
		require.Len(t, messages, 4)
		roles := make([]string, 0, len(messages))
		for _, m := range messages {
			roles = append(roles, m.(map[string]interface{})["role"].(string))
		}
		require.Equal(t, []string{player.RoleSystem, player.RoleUser, player.RoleAssistant, player.RoleUser}, roles)
		require.Equal(t, "第二題", messages[3].(map[string]interface{})["content"])
	})

	t.Run("gemini_retries_when_rate_limited", func(t *testing.T) {
		server := &chatServer{replies: []reply{rateLimited, geminiReply(`{"碰":true}`)}}
		ts := httptest.NewServer(server)
		defer ts.Close()

		backend := player.GeminiBackend{URL: ts.URL, Model: "gemini-2.0-flash", APIKey: "k"}
		p := player.NewLLMPlayer("祝英台", backend, player.Retry{Attempts: 2, Backoff: time.Millisecond})

		action, err := p.Decide(ctx, game.Request{Prompt: "要碰嗎"})
		require.NoError(t, err)
		require.Equal(t, game.PongAction(tile.None), action)

		require.Len(t, server.requests, 2)
		require.Equal(t, "/models/gemini-2.0-flash:generateContent?key=k", server.paths[1])
		require.Contains(t, server.requests[1], "systemInstruction")
		contents := server.requests[1]["contents"].([]interface{})
		require.Len(t, contents, 1)
		require.Equal(t, "user", contents[0].(map[string]interface{})["role"])
	})

	t.Run("gives_up_after_the_retries", func(t *testing.T) {
		server := &chatServer{replies: []reply{rateLimited, rateLimited}}
		ts := httptest.NewServer(server)
		defer ts.Close()

		p := player.NewLLMPlayer("花木蘭", player.GeminiBackend{URL: ts.URL, Model: "m"}, player.Retry{Attempts: 1, Backoff: time.Millisecond})
		_, err := p.Decide(ctx, game.Request{Prompt: "?"})
		require.ErrorIs(t, err, consts.ErrorsProviderFailure)
		require.True(t, consts.IsFatal(err))
		require.Len(t, server.requests, 2)
	})

	t.Run("unreadable_reply_is_recoverable", func(t *testing.T) {
		server := &chatServer{replies: []reply{openAIReply("我想一下")}}
		ts := httptest.NewServer(server)
		defer ts.Close()

		p := player.NewLLMPlayer("聶小倩", player.OpenAIBackend{URL: ts.URL}, noRetry)
		_, err := p.Decide(ctx, game.Request{Prompt: "?"})
		require.ErrorIs(t, err, consts.ErrorsMalformedResponse)
		require.False(t, consts.IsFatal(err))
	})

	t.Run("server_error_is_fatal", func(t *testing.T) {
		server := &chatServer{}
		ts := httptest.NewServer(server)
		defer ts.Close()

		p := player.NewLLMPlayer("聶小倩", player.OpenAIBackend{URL: ts.URL}, player.Retry{Attempts: 3})
		_, err := p.Decide(ctx, game.Request{Prompt: "?"})
		require.ErrorIs(t, err, consts.ErrorsProviderFailure)
		require.Len(t, server.requests, 1)
	})
}
