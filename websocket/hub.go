package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Define update types
const (
	UpdateTypeVote    = "vote_update"
	UpdateTypeNewSong = "new_song"
)

// Update represents a message sent over WebSocket to listening clients
type Update struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	Conn *websocket.Conn

	// Serializes writes; gorilla/websocket allows only one concurrent writer
	// per connection
	writeMu sync.Mutex
}

func (c *Client) send(update Update) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(update)
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an update to every connected client
func (h *Hub) Broadcast(update Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.send(update)
	}
}

// NotifyVote pushes a song's new vote total to all listeners
func (h *Hub) NotifyVote(songID string, votes int64) {
	h.Broadcast(Update{
		Type:    UpdateTypeVote,
		Message: "Vote count updated",
		Data: map[string]interface{}{
			"songId": songID,
			"votes":  votes,
		},
	})
}

// NotifyNewSong announces a freshly uploaded song
func (h *Hub) NotifyNewSong(songData interface{}) {
	h.Broadcast(Update{
		Type:    UpdateTypeNewSong,
		Message: "New song uploaded",
		Data:    songData,
	})
}
