package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vwid-io/vwid/util"
)

const (
	// Time allowed to write a message to the peer
	socketWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SocketClient is a middleman between the websocket connection and the hub
type SocketClient struct {
	hub  *SocketHub
	conn *websocket.Conn
	send chan []byte
}

// writePump pumps messages from the hub to the websocket connection
func (c *SocketClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(socketWriteTimeout)); err != nil {
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump detects closed connections
func (c *SocketClient) readPump() {
	defer func() {
		c.hub.unregister <- c
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ServeWebsocket handles websocket requests from the peer
func ServeWebsocket(hub *SocketHub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.ERROR.Println(err)
		return
	}

	client := &SocketClient{hub: hub, conn: conn, send: make(chan []byte, 1024)}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// socketMessage is a single parameter update
type socketMessage struct {
	Vehicle string      `json:"vin,omitempty"`
	Key     string      `json:"key"`
	Val     interface{} `json:"val"`
}

func encodeParam(p util.Param) ([]byte, error) {
	return json.Marshal(socketMessage{
		Vehicle: p.Vehicle,
		Key:     p.Key,
		Val:     p.Val,
	})
}

// SocketHub maintains the set of active clients and broadcasts messages to the clients
type SocketHub struct {
	register   chan *SocketClient
	unregister chan *SocketClient
	clients    map[*SocketClient]bool
}

// NewSocketHub creates a web socket hub that distributes parameter updates
func NewSocketHub() *SocketHub {
	return &SocketHub{
		register:   make(chan *SocketClient),
		unregister: make(chan *SocketClient),
		clients:    make(map[*SocketClient]bool),
	}
}

func (h *SocketHub) send(client *SocketClient, msg []byte) {
	select {
	case client.send <- msg:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}

// welcome sends the cached state to a new client
func (h *SocketHub) welcome(client *SocketClient, params []util.Param) {
	for _, p := range params {
		msg, err := encodeParam(p)
		if err != nil {
			log.ERROR.Printf("socket: %v", err)
			continue
		}

		h.send(client, msg)
		if _, ok := h.clients[client]; !ok {
			return
		}
	}
}

func (h *SocketHub) broadcast(p util.Param) {
	msg, err := encodeParam(p)
	if err != nil {
		log.ERROR.Printf("socket: %v", err)
		return
	}

	for client := range h.clients {
		h.send(client, msg)
	}
}

// Run starts data and status distribution
func (h *SocketHub) Run(in <-chan util.Param, cache *util.Cache) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.welcome(client, cache.All())

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				close(client.send)
				delete(h.clients, client)
			}

		case p, ok := <-in:
			if !ok {
				return
			}

			if len(h.clients) > 0 {
				h.broadcast(p)
			}
		}
	}
}
