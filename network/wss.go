package network

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/ratel-online/core/log"
)

type Websocket struct {
	addr   string
	server *http.Server
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebsocketServer(addr string) *Websocket {
	w := &Websocket{addr: addr}
	w.server = &http.Server{Addr: addr, Handler: w.Handler()}
	return w
}

func (w *Websocket) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", serveWs)
	return mux
}

func (w *Websocket) Serve() error {
	log.Infof("Websocket server listener on %s\n", w.addr)
	err := w.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (w *Websocket) Shutdown(ctx context.Context) error {
	return w.server.Shutdown(ctx)
}

// Broadcast makes the server a sink for rendered messages.
func (w *Websocket) Broadcast(msg interface{}) {
	Broadcast(msg)
}

func serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error(err)
		return
	}
	listen(connected(conn))
}
