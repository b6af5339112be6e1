package portfolio

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	portfolioservice "github.com/adityanegi/portfolio/backend/internal/service/portfolio"
)

// feedPushInterval is the cadence of unsolicited count pushes, matching
// the polling interval clients use over plain HTTP.
const feedPushInterval = 5 * time.Second

type feedClient struct {
	conn *websocket.Conn
	send chan int
}

// Feed pushes the visitor count to connected websocket clients: once on
// connect, on every increment, and periodically so long-lived connections
// stay warm.
type Feed struct {
	svc      *portfolioservice.Service
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

// NewFeed builds a feed reading counts from the given service.
func NewFeed(svc *portfolioservice.Service) *Feed {
	return &Feed{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*feedClient]struct{}),
	}
}

// Broadcast queues a count push to every connected client. Slow clients
// miss intermediate values rather than blocking the caller.
func (f *Feed) Broadcast(count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		select {
		case client.send <- count:
		default:
		}
	}
}

// HandleLive upgrades the connection and streams counts until the client
// goes away.
func (f *Feed) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := &feedClient{conn: conn, send: make(chan int, 8)}
	f.mu.Lock()
	f.clients[client] = struct{}{}
	f.mu.Unlock()

	go f.writeLoop(r, client)

	// Inbound frames are ignored; the read loop only notices disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.mu.Lock()
	delete(f.clients, client)
	f.mu.Unlock()
	conn.Close()
}

func (f *Feed) writeLoop(r *http.Request, client *feedClient) {
	ticker := time.NewTicker(feedPushInterval)
	defer ticker.Stop()

	count, err := f.svc.VisitorCount(r.Context())
	if err == nil {
		if err := f.push(client, count); err != nil {
			return
		}
	}

	for {
		select {
		case count := <-client.send:
			if err := f.push(client, count); err != nil {
				return
			}
		case <-ticker.C:
			count, err := f.svc.VisitorCount(r.Context())
			if err != nil {
				continue
			}
			if err := f.push(client, count); err != nil {
				return
			}
		}
	}
}

func (f *Feed) push(client *feedClient, count int) error {
	if err := client.conn.WriteJSON(map[string]int{"count": count}); err != nil {
		log.Printf("[ws] dropping live visitor client: %v", err)
		client.conn.Close()
		return err
	}
	return nil
}
