package ports

import "launchpad/internal/shared/events"

// Conn is the transport-owned write side of one live connection. The hub
// owns the registry, never the socket: it hands events to the connection
// through TrySend and expects an immediate answer.
//
// TrySend must never block. It returns false when the connection's outbound
// buffer is full or the connection is closed; the hub treats false as a dead
// subscriber and evicts the connection from every index.
type Conn interface {
	ID() string
	TrySend(event events.Envelope) bool
	Close() error
}
