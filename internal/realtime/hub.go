// Package realtime is the websocket layer: one hub multiplexes chat
// delivery and notification push over per-user and per-conversation rooms.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"toolshare-backend/internal/logger"
)

// Event is the wire envelope for server-to-client pushes.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// InboundMessage is a chat message submitted over the socket.
type InboundMessage struct {
	To        int32  `json:"to"`
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
}

// MessageHandler persists and relays a chat message received on a socket.
// Wired after construction because the chat service itself pushes through
// the hub.
type MessageHandler func(ctx context.Context, senderID int32, msg InboundMessage)

// Hub tracks connected clients and their room membership. Membership is
// in-memory only and lost on restart.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	messageHandler MessageHandler
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		rooms:   make(map[string]map[*Client]bool),
	}
}

// SetMessageHandler wires the chat send path. Must be called before the
// first connection is accepted.
func (h *Hub) SetMessageHandler(handler MessageHandler) {
	h.messageHandler = handler
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	h.joinLocked(c, UserRoom(c.userID))
	logger.Debug("Socket connected", "user_id", c.userID, "clients", len(h.clients))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	for room := range c.rooms {
		h.leaveLocked(c, room)
	}
	close(c.send)
	logger.Debug("Socket disconnected", "user_id", c.userID, "clients", len(h.clients))
}

// JoinRoom adds a client to a chat room after checking the caller is one of
// the room's participants.
func (h *Hub) JoinRoom(c *Client, roomID string) bool {
	if !IsParticipant(roomID, c.userID) {
		logger.Warn("Rejected joinRoom for non-participant", "user_id", c.userID, "room", roomID)
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinLocked(c, roomID)
	return true
}

func (h *Hub) joinLocked(c *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][c] = true
	c.rooms[roomID] = true
}

func (h *Hub) leaveLocked(c *Client, roomID string) {
	if members := h.rooms[roomID]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	delete(c.rooms, roomID)
}

// BroadcastToRoom pushes an event to every socket joined to the room.
func (h *Hub) BroadcastToRoom(roomID string, event string, payload interface{}) {
	data, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		logger.Error("Failed to marshal room event", "event", event, "error", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		c.enqueue(data)
	}
}

// SendToUser pushes an event to all of a user's live sockets and reports
// whether any were connected.
func (h *Hub) SendToUser(userID int32, event string, payload interface{}) bool {
	data, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		logger.Error("Failed to marshal user event", "event", event, "error", err)
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	members := h.rooms[UserRoom(userID)]
	for c := range members {
		c.enqueue(data)
	}
	return len(members) > 0
}

// IsOnline reports whether the user has at least one live socket.
func (h *Hub) IsOnline(userID int32) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[UserRoom(userID)]) > 0
}
