// internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Notification messages
	MessageNotification MessageType = "notification"

	// Workspace lifecycle messages
	MessageWorkspaceProvisioned MessageType = "workspace_provisioned"
	MessageWorkspaceUpdated     MessageType = "workspace_updated"
	MessageWorkspaceWindingDown MessageType = "workspace_winding_down"
	MessageWorkspaceDissolved   MessageType = "workspace_dissolved"
	MessageWorkspaceReactivated MessageType = "workspace_reactivated"

	// Membership messages
	MessageMemberDeparted MessageType = "member_departed"
	MessageAccessRevoked  MessageType = "access_revoked"

	// Task messages
	MessageTaskCreated    MessageType = "task_created"
	MessageTaskReassigned MessageType = "task_reassigned"
	MessageTaskUpdated    MessageType = "task_updated"

	// System messages
	MessagePing MessageType = "ping"
	MessagePong MessageType = "pong"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType            `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// DirectMessage represents a message to be sent to a specific user
type DirectMessage struct {
	UserID  string
	Message []byte
}

// Hub maintains the set of active clients and routes messages to them.
type Hub struct {
	clients     map[*Client]bool
	userClients map[string]map[*Client]bool

	register      chan *Client
	unregister    chan *Client
	broadcast     chan []byte
	directMessage chan *DirectMessage

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		userClients:   make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		broadcast:     make(chan []byte, 256),
		directMessage: make(chan *DirectMessage, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	log.Println("[Hub] WebSocket hub started")

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToAll(message)

		case dm := <-h.directMessage:
			h.sendToUser(dm)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if h.userClients[client.UserID] == nil {
		h.userClients[client.UserID] = make(map[*Client]bool)
	}
	h.userClients[client.UserID][client] = true

	log.Printf("[Hub] Client registered: user=%s, id=%s, total_clients=%d",
		client.UserID, client.ID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)

		if clients, ok := h.userClients[client.UserID]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.userClients, client.UserID)
			}
		}

		close(client.Send)
		log.Printf("[Hub] Client disconnected: user=%s, id=%s, total_clients=%d",
			client.UserID, client.ID, len(h.clients))
	}
}

func (h *Hub) broadcastToAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

func (h *Hub) sendToUser(dm *DirectMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.userClients[dm.UserID]
	if !ok {
		return
	}

	for client := range clients {
		select {
		case client.Send <- dm.Message:
		default:
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

// SendToUser delivers a typed message to every connection of a user.
func (h *Hub) SendToUser(userID string, msgType MessageType, payload map[string]interface{}) {
	data, err := json.Marshal(Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("[Hub] Failed to marshal message: %v", err)
		return
	}
	h.directMessage <- &DirectMessage{UserID: userID, Message: data}
}

// GetConnectedClientsCount returns the number of connected clients.
func (h *Hub) GetConnectedClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
