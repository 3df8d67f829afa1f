package transport

import (
	"sync"

	"github.com/gorilla/websocket"

	"chatdice/contract"
	"chatdice/domain/event"
)

var _ contract.EventSink = (*connSink)(nil)

// envelope is the outbound wire frame: the event name plus the event
// payload, exactly what a socket.io style client expects.
type envelope struct {
	Type string             `json:"type"`
	Data event.SessionEvent `json:"data"`
}

// connSink adapts one websocket connection to the engine's EventSink.
// Gorilla allows a single concurrent writer, so every write goes
// through the mutex.
type connSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newConnSink(conn *websocket.Conn) *connSink {
	return &connSink{conn: conn}
}

func (s *connSink) Consume(e event.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(envelope{Type: e.EventName(), Data: e})
}

func (s *connSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}
