package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgAttemptStarted    MessageType = "attempt_started"
	MsgTimerUpdate       MessageType = "timer_update"
	MsgAttemptCompleted  MessageType = "attempt_completed"
	MsgCertificateUpdate MessageType = "certificate_update"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for live attempts. An attempt can have
// several watchers (the participant on more than one tab, a trainer
// observing); every watcher gets every event.
type Hub struct {
	conns map[string]map[*Connection]bool // attemptID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one WebSocket watcher of an attempt
type Connection struct {
	AttemptID     string
	ParticipantID string
	Send          chan []byte
	Hub           *Hub
}

// BroadcastMessage is a message addressed to all watchers of one attempt
type BroadcastMessage struct {
	AttemptID string
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.AttemptID] == nil {
				h.conns[conn.AttemptID] = make(map[*Connection]bool)
			}
			h.conns[conn.AttemptID][conn] = true
			h.mu.Unlock()
			log.Printf("Watcher connected to attempt %s", conn.AttemptID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if watchers, ok := h.conns[conn.AttemptID]; ok && watchers[conn] {
				delete(watchers, conn)
				close(conn.Send)
				if len(watchers) == 0 {
					delete(h.conns, conn.AttemptID)
				}
				log.Printf("Watcher disconnected from attempt %s", conn.AttemptID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.AttemptID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToAttempt sends a message to every watcher of an attempt
// (implements service.Broadcaster)
func (h *Hub) BroadcastToAttempt(attemptID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s payload for attempt %s: %v", msgType, attemptID, err)
		return
	}
	h.broadcast <- &BroadcastMessage{
		AttemptID: attemptID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
