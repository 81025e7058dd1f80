package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// streamHub fans simulation telemetry out to connected websocket clients.
type streamHub struct {
	logger   *Logger
	upgrader websocket.Upgrader

	mu         sync.Mutex
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	wg         sync.WaitGroup
}

func newStreamHub(logger *Logger) *streamHub {
	h := &streamHub{
		logger:     logger,
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Broadcast queues a JSON-encoded message for every connected client. Drops
// the message when the queue is full rather than stalling the tick loop.
func (h *streamHub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Errorf("encode broadcast: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warnf("stream queue full, dropping update")
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away.
func (h *streamHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("websocket upgrade: %v", err)
		return
	}
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	// Drain control frames; any read error unregisters the client.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				select {
				case h.unregister <- conn:
				case <-h.done:
				}
				return
			}
		}
	}()
}

func (h *streamHub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					delete(h.clients, conn)
					conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Close shuts the hub down and disconnects every client.
func (h *streamHub) Close() {
	close(h.done)
	h.wg.Wait()
	h.mu.Lock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = map[*websocket.Conn]bool{}
	h.mu.Unlock()
}
