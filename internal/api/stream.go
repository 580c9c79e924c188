package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tickerwatch/scanner/pkg/logger"
)

// RebuildEvent is pushed to every connected client after a watchlist
// rebuild, so the tracker UI can refetch instead of polling.
type RebuildEvent struct {
	Type      string    `json:"type"`
	Selected  int       `json:"selected"`
	Timestamp time.Time `json:"timestamp"`
}

// Stream fans watchlist rebuild events out over websocket.
type Stream struct {
	upgrader websocket.Upgrader
	logger   *logger.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]bool

	// writeMu serializes broadcasts; a *websocket.Conn allows only
	// one concurrent writer.
	writeMu sync.Mutex
}

// NewStream creates the event stream.
func NewStream(log *logger.Logger) *Stream {
	return &Stream{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: log,
		conns:  make(map[*websocket.Conn]bool),
	}
}

// Handle upgrades one connection and keeps it registered until the
// peer goes away.
func (s *Stream) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	s.mu.Lock()
	s.conns[conn] = true
	s.mu.Unlock()

	s.logger.WithField("remote", conn.RemoteAddr().String()).Debug("Stream client connected")

	// Drain reads to notice the close; clients never send payloads.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// NotifyRebuild broadcasts a rebuild event to every client. Clients
// that fail to receive are dropped.
func (s *Stream) NotifyRebuild(count int) {
	event := RebuildEvent{
		Type:      "watchlist_rebuilt",
		Selected:  count,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			s.drop(conn)
		}
	}
}

func (s *Stream) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conns[conn] {
		delete(s.conns, conn)
		conn.Close()
	}
	s.mu.Unlock()
}
