package main

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// Hub tracks the live feed subscribers and fans snapshot frames out to them
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
	log        *logrus.Entry
}

// NewHub creates an idle hub; Run must be started before clients register
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
		ipConns:    make(map[string]int),
		log:        logrus.WithField("component", "hub"),
	}
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Run processes register/unregister/broadcast events until ctx is done,
// then closes every client queue
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.mu.Lock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case frame := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				c.SendBinary(frame)
			}
			n := len(h.clients)
			h.mu.RUnlock()
			h.log.WithField("subscribers", n).Debug("snapshot broadcast")
		}
	}
}

// Register adds a client to the fan-out, returning once the hub has it.
// It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client and closes its queue
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a snapshot frame for every subscriber
func (h *Hub) Broadcast(frame []byte) {
	select {
	case h.broadcast <- frame:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}
