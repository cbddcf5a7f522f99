package messaging

import (
	"log"
	"sync"

	"complaint-portal/internal/model"

	"github.com/google/uuid"
)

const clientBuffer = 10

type SSEClient struct {
	UserID  uuid.UUID
	Channel chan *model.Notification
}

// SSEHub fans notifications out to the open streams of their user. A slow
// stream drops notifications instead of blocking the hub.
type SSEHub struct {
	clients    map[uuid.UUID][]*SSEClient
	register   chan *SSEClient
	unregister chan *SSEClient
	broadcast  chan *model.Notification
	stop       chan struct{}
	mu         sync.RWMutex
}

func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients:    make(map[uuid.UUID][]*SSEClient),
		register:   make(chan *SSEClient),
		unregister: make(chan *SSEClient),
		broadcast:  make(chan *model.Notification, 100),
		stop:       make(chan struct{}),
	}
}

func (h *SSEHub) Run() {
	for {
		select {
		case <-h.stop:
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			log.Printf("sse: client registered for user %s", client.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			userClients := h.clients[client.UserID]
			for i, c := range userClients {
				if c == client {
					h.clients[client.UserID] = append(userClients[:i], userClients[i+1:]...)
					close(client.Channel)
					break
				}
			}
			if len(h.clients[client.UserID]) == 0 {
				delete(h.clients, client.UserID)
			}
			h.mu.Unlock()

		case n := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[n.UserID] {
				select {
				case client.Channel <- n:
				default:
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *SSEHub) RegisterClient(userID uuid.UUID) *SSEClient {
	client := &SSEClient{
		UserID:  userID,
		Channel: make(chan *model.Notification, clientBuffer),
	}
	select {
	case h.register <- client:
	case <-h.stop:
		close(client.Channel)
	}
	return client
}

// UnregisterClient is a no-op once the hub has stopped.
func (h *SSEHub) UnregisterClient(client *SSEClient) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

func (h *SSEHub) SendToUser(n *model.Notification) {
	select {
	case h.broadcast <- n:
	case <-h.stop:
	}
}

// ClientCount is the number of open streams of a user.
func (h *SSEHub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *SSEHub) Stop() {
	close(h.stop)
}
