package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	livePongWait       = 60 * time.Second
	liveMaxMessageSize = 1 << 20
)

// Live consumes frames from a websocket feed server (cmd/feedsrv or the
// analytics backend). It keeps only the most recent frame; if the viewer
// polls slower than the server publishes, intermediate frames are dropped.
type Live struct {
	url string

	mu     sync.Mutex
	latest Frame
	has    bool

	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

// DialLive starts a background connection to url. Dialing and reconnecting
// happen off the caller's goroutine; Poll reports nothing until the first
// frame arrives.
func DialLive(url string) *Live {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Live{
		url:    url,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go l.run(ctx)
	return l
}

func (l *Live) run(ctx context.Context) {
	defer close(l.done)

	// Reconnects are paced so a dead server isn't hammered.
	limiter := rate.NewLimiter(rate.Every(2*time.Second), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.url, nil)
		if err != nil {
			log.Printf("feed: dial %s: %v", l.url, err)
			continue
		}
		l.readLoop(ctx, conn)
		if ctx.Err() != nil {
			return
		}
	}
}

func (l *Live) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	conn.SetReadLimit(liveMaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(livePongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("feed: read %s: %v", l.url, err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(livePongWait))

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != TypeFrame {
			continue // malformed or unrelated messages are dropped
		}
		var frame Frame
		if err := json.Unmarshal(msg.Data, &frame); err != nil {
			continue
		}

		l.mu.Lock()
		l.latest = frame
		l.has = true
		l.mu.Unlock()
	}
}

func (l *Live) Poll() (Frame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest, l.has
}

func (l *Live) Close() error {
	l.once.Do(func() {
		l.cancel()
		<-l.done
	})
	return nil
}
