package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"reviewBack/internal/models"
)

const (
	feedReadLimit     = 1 << 20
	feedWriteDeadline = 5 * time.Second
	feedPingInterval  = 15 * time.Second
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type feedClient struct {
	pageID string
	conn   *websocket.Conn
}

// ReviewFeed pushes freshly created submissions to viewers of a review
// page. All access to the client map happens on the Run goroutine.
type ReviewFeed struct {
	clients    map[string]map[*websocket.Conn]bool
	register   chan feedClient
	unregister chan feedClient
	publish    chan models.Submission
}

func NewReviewFeed() *ReviewFeed {
	return &ReviewFeed{
		clients:    make(map[string]map[*websocket.Conn]bool),
		register:   make(chan feedClient),
		unregister: make(chan feedClient),
		publish:    make(chan models.Submission),
	}
}

func (f *ReviewFeed) Run() {
	ticker := time.NewTicker(feedPingInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-f.register:
			if f.clients[client.pageID] == nil {
				f.clients[client.pageID] = make(map[*websocket.Conn]bool)
			}
			f.clients[client.pageID][client.conn] = true

		case client := <-f.unregister:
			if conns, ok := f.clients[client.pageID]; ok && conns[client.conn] {
				client.conn.Close()
				delete(conns, client.conn)
				if len(conns) == 0 {
					delete(f.clients, client.pageID)
				}
			}

		case sub := <-f.publish:
			for conn := range f.clients[sub.ID] {
				_ = conn.SetWriteDeadline(time.Now().Add(feedWriteDeadline))
				if err := conn.WriteJSON(sub); err != nil {
					log.Printf("review feed write error: %v", err)
					conn.Close()
					delete(f.clients[sub.ID], conn)
				}
			}

		case <-ticker.C:
			for _, conns := range f.clients {
				for conn := range conns {
					_ = conn.SetWriteDeadline(time.Now().Add(feedWriteDeadline))
					_ = conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}
}

// Publish hands a created submission to the feed. Safe to call from any
// handler goroutine.
func (f *ReviewFeed) Publish(sub models.Submission) {
	f.publish <- sub
}

// ReviewFeedHandler upgrades the connection and streams submissions for the
// requested page until the client goes away.
func (app *application) ReviewFeedHandler(w http.ResponseWriter, r *http.Request) {
	pageID := r.URL.Query().Get("id")
	if pageID == "" {
		http.Error(w, "Review ID is required", http.StatusBadRequest)
		return
	}

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("websocket upgrade: %v", err)
		return
	}
	conn.SetReadLimit(feedReadLimit)

	client := feedClient{pageID: pageID, conn: conn}
	app.feed.register <- client

	// Reads are discarded; the loop exists to notice the close frame.
	go func() {
		defer func() { app.feed.unregister <- client }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
