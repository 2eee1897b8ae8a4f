package websocket

import (
	"net"
	"time"
)

// Connection is the part of *websocket.Conn the client uses. Tests swap in
// an in-memory implementation.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)
	RemoteAddr() net.Addr
}

// Broadcaster is implemented by *Hub
type Broadcaster interface {
	Broadcast(messageType string, data interface{})
	ClientCount() int
}
