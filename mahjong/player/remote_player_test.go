package player_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ratel-online/mahjong16/consts"
	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/player"
	"github.com/stretchr/testify/require"
)

// dialRemote serves one websocket seat and returns it with the client side.
func dialRemote(t *testing.T) (*player.RemotePlayer, *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	seats := make(chan *player.RemotePlayer, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		seats <- player.NewRemotePlayer("遠端", conn)
	}))
	t.Cleanup(ts.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	select {
	case seat := <-seats:
		return seat, client
	case <-time.After(5 * time.Second):
		t.Fatal("no websocket seat")
	}
	return nil, nil
}

type decision struct {
	action game.Action
	err    error
}

func decideAsync(p game.Player, req game.Request) chan decision {
	result := make(chan decision, 1)
	go func() {
		action, err := p.Decide(context.Background(), req)
		result <- decision{action: action, err: err}
	}()
	return result
}

func TestRemotePlayer(t *testing.T) {
	t.Run("relays_prompt_and_answer", func(t *testing.T) {
		seat, client := dialRemote(t)
		req := ownTurn(tiles(t, "一萬,二萬"), one(t, "三萬"))
		req.Seat = 2
		req.Prompt = "輪到你了"
		result := decideAsync(seat, req)

		_, data, err := client.ReadMessage()
		require.NoError(t, err)
		packet := player.Packet{}
		require.NoError(t, json.Unmarshal(data, &packet))
		require.Equal(t, player.PacketPrompt, packet.Type)
		require.Equal(t, 2, packet.Seat)
		require.Equal(t, "輪到你了", packet.Text)
		require.Equal(t, game.ActionSpec{Kind: mjconsts.DISCARD}.Describe(), packet.Options)

		require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"丟":"一萬"}`)))
		got := <-result
		require.NoError(t, got.err)
		require.Equal(t, game.DiscardAction(one(t, "一萬")), got.action)
		require.True(t, seat.Online())
	})

	t.Run("disconnect_fails_the_seat", func(t *testing.T) {
		seat, client := dialRemote(t)
		result := decideAsync(seat, ownTurn(tiles(t, "一萬"), one(t, "二萬")))

		_, _, err := client.ReadMessage()
		require.NoError(t, err)
		require.NoError(t, client.Close())

		got := <-result
		require.ErrorIs(t, got.err, consts.ErrorsProviderFailure)
		<-seat.Done()
		require.False(t, seat.Online())
	})
}
