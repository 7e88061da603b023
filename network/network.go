package network

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/player"
	"github.com/ratel-online/mahjong16/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Network is interface of all kinds of network.
type Network interface {
	Serve() error
}

// AuthInfo is the first frame a client sends.
type AuthInfo struct {
	Name string `json:"name"`
}

func handle(s *service.Service, c player.Conn) error {
	log.Info("new player connected! ")
	authInfo, err := loginAuth(c)
	if err != nil {
		reject(c, err)
		return err
	}
	table, seat, err := s.Join(authInfo.Name, c)
	if err != nil {
		reject(c, err)
		return err
	}
	log.Infof("player auth accessed, %s seated at %d on table %s\n", authInfo.Name, seat, table.ID)
	return nil
}

func reject(c player.Conn, err error) {
	data, _ := json.Marshal(player.Packet{Type: player.PacketError, Seat: -1, Text: err.Error()})
	if writeErr := c.WriteMessage(textMessage, data); writeErr != nil {
		log.Error(writeErr)
	}
	if closeErr := c.Close(); closeErr != nil {
		log.Error(closeErr)
	}
}

// loginAuth waits for the auth frame. A slow client is dropped after AuthTimeout.
func loginAuth(c player.Conn) (*AuthInfo, error) {
	authChan := make(chan *AuthInfo, 1)
	errChan := make(chan error, 1)
	async.Async(func() {
		_, data, err := c.ReadMessage()
		if err != nil {
			errChan <- err
			return
		}
		authInfo := &AuthInfo{}
		if err = json.Unmarshal(data, authInfo); err != nil {
			errChan <- err
			return
		}
		authChan <- authInfo
	})
	select {
	case authInfo := <-authChan:
		return authInfo, nil
	case err := <-errChan:
		log.Error(err)
		return nil, consts.ErrorsAuthFail
	case <-time.After(consts.AuthTimeout):
		return nil, consts.ErrorsAuthFail
	}
}
