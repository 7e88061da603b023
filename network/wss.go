package network

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/mahjong16/service"
)

const textMessage = websocket.TextMessage

type Websocket struct {
	addr    string
	service *service.Service
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebsocketServer(addr string, s *service.Service) Websocket {
	return Websocket{addr: addr, service: s}
}

// Handler serves /ws for players and /tables for the table list.
func (w Websocket) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", w.serveWs)
	mux.HandleFunc("/tables", serveTables)
	return mux
}

func (w Websocket) Serve() error {
	log.Infof("Websocket server listener on %s\n", w.addr)
	return http.ListenAndServe(w.addr, w.Handler())
}

func (w Websocket) serveWs(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.Error(err)
		return
	}
	if err = handle(w.service, conn); err != nil {
		log.Infof("[Websocket.serveWs] %s rejected: %v\n", r.RemoteAddr, err)
	}
}

func serveTables(rw http.ResponseWriter, _ *http.Request) {
	tables := service.GetTables()
	models := make([]service.TableModel, 0, len(tables))
	for _, table := range tables {
		models = append(models, table.Model())
	}
	data, err := json.Marshal(models)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_, _ = rw.Write(data)
}
