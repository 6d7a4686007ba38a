// Package transport adapts a net.Conn to telnet.Transport and drives the
// read loop that feeds raw bytes into a telnet.Session, replacing the
// reader/writer/connection trio the session glue used to hand-roll per
// protocol.
package transport

import (
	"net"
	"sync"
)

// netTransport implements telnet.Transport over a net.Conn. Pause/Resume
// only set an advisory flag, reported by Paused; net.Conn has no
// read-throttling primitive, and the server's read loop does not consult
// the flag, so reads continue while paused.
type netTransport struct {
	conn net.Conn

	mu        sync.Mutex
	paused    bool
	destroyed bool
}

func newNetTransport(conn net.Conn) *netTransport {
	return &netTransport{conn: conn}
}

func (t *netTransport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

func (t *netTransport) Pause() {
	t.mu.Lock()
	t.paused = true
	t.mu.Unlock()
}

func (t *netTransport) Resume() {
	t.mu.Lock()
	t.paused = false
	t.mu.Unlock()
}

func (t *netTransport) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// End half-closes the write side where the underlying conn supports it
// (TCP), otherwise it falls back to a full Close.
func (t *netTransport) End() error {
	if cw, ok := t.conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return t.Destroy()
}

func (t *netTransport) Destroy() error {
	t.mu.Lock()
	t.destroyed = true
	t.mu.Unlock()
	return t.conn.Close()
}

func (t *netTransport) Readable() bool {
	return !t.Destroyed()
}

func (t *netTransport) Writable() bool {
	return !t.Destroyed()
}

func (t *netTransport) Destroyed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destroyed
}
