// feedsrv is a demo feed server: it broadcasts mock frames over websocket so
// the viewer's --feed mode and cmd/record have something to talk to.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/milk9111/tacmap/feed"
)

const writeWait = 10 * time.Second

type server struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

func newServer() *server {
	return &server{
		conns: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feedsrv: upgrade: %v", err)
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	n := len(s.conns)
	s.mu.Unlock()
	log.Printf("feedsrv: client connected (%d total)", n)

	// Drain reads so pings are answered and closes are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

func (s *server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.conns[conn]; ok {
		delete(s.conns, conn)
		conn.Close()
		log.Printf("feedsrv: client disconnected (%d total)", len(s.conns))
	}
	s.mu.Unlock()
}

func (s *server) broadcast(src feed.Source, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		frame, ok := src.Poll()
		if !ok {
			continue
		}
		msg, err := feed.NewFrameMessage(frame)
		if err != nil {
			log.Printf("feedsrv: encode frame: %v", err)
			continue
		}
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("feedsrv: marshal message: %v", err)
			continue
		}

		s.mu.Lock()
		var dead []*websocket.Conn
		for conn := range s.conns {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				dead = append(dead, conn)
			}
		}
		s.mu.Unlock()

		for _, conn := range dead {
			s.drop(conn)
		}
	}
}

func main() {
	addr := flag.String("addr", ":8800", "listen address")
	perTeam := flag.Int("players", 5, "players per team")
	hz := flag.Int("hz", 16, "frames broadcast per second")
	flag.Parse()

	src := feed.NewMock(1024, 1024, *perTeam)
	srv := newServer()
	go srv.broadcast(src, time.Second/time.Duration(*hz))

	http.HandleFunc("/feed", srv.handleFeed)
	log.Printf("feedsrv: listening on %s (ws path /feed, %d players per team)", *addr, *perTeam)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal(err)
	}
}
