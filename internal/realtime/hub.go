// Package realtime pushes capture-upload events to connected admin
// dashboards. Events are routed strictly by company id: a client only ever
// sees its own tenant's activity.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Type      string    `json:"type"`
	CompanyID uuid.UUID `json:"-"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

const EventCaptureUploaded = "capture_uploaded"

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("ERROR [realtime.Hub] failed to marshal event: %v", err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				if client.companyID != event.CompanyID {
					continue
				}
				select {
				case client.send <- data:
				default:
					// Slow consumer, drop it rather than block the hub.
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts down the hub and disconnects all clients. It blocks until Run
// has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

// Broadcast queues an event for delivery to the event's tenant. It never
// blocks the caller; events are dropped if the hub has shut down.
func (h *Hub) Broadcast(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- event:
	case <-h.done:
	}
}

// Register attaches a connected client to the hub.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Unregister detaches a client. Safe to call after the hub has shut down;
// Run's exit already closed every remaining client.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
