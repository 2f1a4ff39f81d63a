package network

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/awesome-cap/hashmap"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Network is interface of all kinds of network.
type Network interface {
	Serve() error
}

// clients holds the connected viewers of the process, keyed by connection id.
var clients = hashmap.New()

var (
	clientSeq   int64
	clientCount int64
	starts      = make(chan struct{}, 1)
)

type client struct {
	id   int64
	conn *websocket.Conn
	mu   sync.Mutex
	once sync.Once
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(consts.BroadcastWindow)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func connected(conn *websocket.Conn) *client {
	c := &client{id: atomic.AddInt64(&clientSeq, 1), conn: conn}
	clients.Set(c.id, c)
	atomic.AddInt64(&clientCount, 1)
	log.Infof("viewer %d connected from %s\n", c.id, conn.RemoteAddr())
	return c
}

// disconnected may be reached from both the read loop and a failed broadcast.
func disconnected(c *client) {
	c.once.Do(func() {
		clients.Del(c.id)
		atomic.AddInt64(&clientCount, -1)
		_ = c.conn.Close()
		log.Infof("viewer %d disconnected\n", c.id)
	})
}

// Clients is the number of connected viewers.
func Clients() int {
	return int(atomic.LoadInt64(&clientCount))
}

// Starts delivers viewer requests to play a round. Requests arriving while one is pending are merged.
func Starts() <-chan struct{} {
	return starts
}

// Broadcast sends the message to every viewer and drops the ones that cannot be written to.
func Broadcast(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error(err)
		return
	}
	dead := make([]*client, 0)
	clients.Foreach(func(e *hashmap.Entry) {
		c := e.Value().(*client)
		if err := c.write(data); err != nil {
			dead = append(dead, c)
		}
	})
	for _, c := range dead {
		disconnected(c)
	}
}

// listen reads viewer requests until the connection fails.
func listen(c *client) {
	async.Async(func() {
		defer disconnected(c)
		for {
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				return
			}
			req := model.Request{}
			if err := json.Unmarshal(data, &req); err != nil {
				log.Errorf("viewer %d sent %q: %v\n", c.id, data, err)
				continue
			}
			if req.Action == model.ActionStart {
				select {
				case starts <- struct{}{}:
				default:
				}
			}
		}
	})
}
