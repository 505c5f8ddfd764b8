// Package mbox provides the mailbox transport the firmware client talks
// over: an ordered, message-oriented byte stream with an asynchronous
// receive path. The in-process Pipe stands in for the secure-proxy hardware
// in tests and demos.
package mbox

import (
	"errors"
	"sync"
)

// Queue depth of one pipe direction.
const queueDepth = 16

var (
	// ErrClosed reports a send on a closed connection.
	ErrClosed = errors.New("mbox: connection closed")

	// ErrFull reports that the peer's receive queue is full.
	ErrFull = errors.New("mbox: queue full")
)

// Conn is one end of a mailbox connection. Messages sent on one end arrive,
// in order, at the receive function of the other end.
type Conn interface {
	// Send queues one message for the peer. The message is copied.
	Send(msg []byte) error

	// OnReceive sets the function invoked for every received message.
	// Messages arriving before a function is set are queued.
	OnReceive(fn func(msg []byte))

	// Close tears the connection down. Queued messages are dropped.
	Close() error
}

type end struct {
	mu     sync.Mutex
	peer   *end
	fn     func([]byte)
	queue  [][]byte
	closed bool
}

// Pipe creates a connected pair of mailbox ends.
func Pipe() (Conn, Conn) {
	a := &end{}
	b := &end{}
	a.peer = b
	b.peer = a
	return a, b
}

func (e *end) Send(msg []byte) error {
	cp := make([]byte, len(msg))
	copy(cp, msg)
	return e.peer.deliver(cp)
}

func (e *end) deliver(msg []byte) error {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}

	if e.fn == nil {
		if len(e.queue) >= queueDepth {
			e.mu.Unlock()
			return ErrFull
		}
		e.queue = append(e.queue, msg)
		e.mu.Unlock()
		return nil
	}

	fn := e.fn
	e.mu.Unlock()

	// The receive function runs outside the lock: handlers are allowed to
	// send their reply from within the callback.
	fn(msg)

	return nil
}

func (e *end) OnReceive(fn func([]byte)) {
	e.mu.Lock()
	e.fn = fn
	queued := e.queue
	e.queue = nil
	e.mu.Unlock()

	for _, msg := range queued {
		fn(msg)
	}
}

func (e *end) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.queue = nil

	return nil
}
