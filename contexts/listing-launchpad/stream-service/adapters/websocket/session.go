package wsadapter

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"launchpad/contexts/listing-launchpad/stream-service/application/hub"
	"launchpad/contexts/listing-launchpad/stream-service/ports"
	"launchpad/contexts/listing-launchpad/stream-service/transport/ws"
	"launchpad/internal/shared/events"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	DefaultSendBuffer = 64
)

// Socket is the slice of *websocket.Conn the session needs. Tests substitute
// an in-memory fake.
type Socket interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Session owns one socket. It is the single writer on the socket: the hub
// and the read loop enqueue into the bounded send buffer, the write loop
// drains it. A full buffer makes TrySend report false and the hub evicts
// the session.
type Session struct {
	id     string
	socket Socket
	hub    *hub.Hub
	logger *slog.Logger

	send      chan events.Envelope
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
}

func NewSession(socket Socket, h *hub.Hub, bufferSize int, logger *slog.Logger) *Session {
	if bufferSize <= 0 {
		bufferSize = DefaultSendBuffer
	}
	return &Session{
		id:     uuid.NewString(),
		socket: socket,
		hub:    h,
		logger: logger,
		send:   make(chan events.Envelope, bufferSize),
		done:   make(chan struct{}),
	}
}

func (s *Session) ID() string { return s.id }

// TrySend enqueues without blocking. False means the buffer is full or the
// session is closed.
func (s *Session) TrySend(event events.Envelope) bool {
	if s.closed.Load() {
		return false
	}
	select {
	case s.send <- event:
		return true
	default:
		return false
	}
}

func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)
		err = s.socket.Close()
	})
	return err
}

// Run pumps the socket until either side goes away, then evicts the session
// from the hub. It blocks for the life of the connection.
func (s *Session) Run() {
	go s.writeLoop()
	s.readLoop()
	s.hub.Drop(s)
}

func (s *Session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case event := <-s.send:
			_ = s.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.socket.WriteJSON(event); err != nil {
				s.hub.Drop(s)
				return
			}
		case <-ticker.C:
			_ = s.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.hub.Drop(s)
				return
			}
		}
	}
}

func (s *Session) readLoop() {
	_ = s.socket.SetReadDeadline(time.Now().Add(pongWait))
	s.socket.SetPongHandler(func(string) error {
		return s.socket.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var msg ws.ClientMessage
		if err := s.socket.ReadJSON(&msg); err != nil {
			return
		}
		s.handleControl(msg)
	}
}

func (s *Session) handleControl(msg ws.ClientMessage) {
	switch msg.Action {
	case ws.ActionSubscribe:
		if err := s.hub.Subscribe(msg.Topic, msg.EntityID, s); err != nil {
			s.sendError("unknown_topic", "topic "+msg.Topic+" does not exist")
		}
	case ws.ActionUnsubscribe:
		s.hub.Unsubscribe(msg.Topic, msg.EntityID, s.id)
	case ws.ActionPing:
		s.TrySend(events.Envelope{
			EventID:       uuid.NewString(),
			EventType:     events.TypePong,
			OccurredAtUTC: time.Now().UTC(),
		})
	default:
		s.sendError("unknown_action", "action "+msg.Action+" is not supported")
	}
}

func (s *Session) sendError(code string, message string) {
	s.TrySend(events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     "error",
		OccurredAtUTC: time.Now().UTC(),
		Payload: ws.ErrorMessage{
			Code:    code,
			Message: message,
		},
	})
}

var _ ports.Conn = (*Session)(nil)
