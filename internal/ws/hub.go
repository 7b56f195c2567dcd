package ws

import (
	"context"
	"log"
	"sync"
)

// Hub fans job events out to the connected websocket clients subscribed to
// them. Run owns the client set; other goroutines talk to it through
// channels until done is closed.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *log.Logger
}

// outbound is a frame and the event type it carries. An empty event reaches
// every client.
type outbound struct {
	event string
	data  []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is done, then closes every client. Register
// and Unregister stop blocking once Run has returned.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				c.closeSend()
			}
			h.mutex.Unlock()
			h.stop()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("[WS] connected | total_clients=%d", total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				if c.wants(message.event) {
					snapshot = append(snapshot, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- message.data:
				default:
					// slow consumer
					h.remove(client)
				}
			}
			h.logf("[WS] broadcast | event=%s clients=%d", message.event, len(snapshot))
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logf("[WS] disconnected | total_clients=%d", total)
}

// stop releases blocked callers and closes clients still queued for
// registration.
func (h *Hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case c := <-h.register:
			if c != nil {
				c.closeSend()
			}
		default:
			return
		}
	}
}

// Register after Run has returned closes the client's send channel so its
// write pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case <-h.done:
		client.closeSend()
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends message to every client. It never blocks; a full buffer
// drops the message.
func (h *Hub) Broadcast(message []byte) {
	h.send(outbound{data: message})
}

func (h *Hub) send(msg outbound) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logf("[WS] broadcast dropped | reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
